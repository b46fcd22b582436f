package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emartsoft/login-service/internal/application"
	"github.com/emartsoft/login-service/internal/domain/entity"
	"github.com/emartsoft/login-service/internal/interface/middleware"
	"github.com/emartsoft/login-service/pkg/response"
	"github.com/emartsoft/login-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,phone"`
	Password        string `json:"password" binding:"required,strongpwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	City            string `json:"city" binding:"required,min=2,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		City:            req.City,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, authPayload(res), "registration successful")
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, authPayload(res), "authentication successful")
}

// Profile GET /api/profile (bearer-protected)
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	acc, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, http.StatusNotFound, "account not found", nil)
		return
	}
	response.Success(c, http.StatusOK, accountPayload(acc), "profile")
}

func authPayload(res *application.AuthResult) gin.H {
	return gin.H{
		"token":      res.Token,
		"token_type": res.TokenType,
		"expires_in": res.ExpiresIn,
		"account_id": res.Account.ID,
		"name":       res.Account.Name,
		"email":      res.Account.Email,
		"roles":      res.Account.Roles,
	}
}

func accountPayload(acc *entity.Account) gin.H {
	return gin.H{
		"id":         acc.ID,
		"name":       acc.Name,
		"email":      acc.Email,
		"phone":      acc.Phone,
		"city":       acc.City,
		"roles":      acc.Roles,
		"last_login": acc.LastLogin,
		"created_at": acc.CreatedAt,
		"updated_at": acc.UpdatedAt,
	}
}

// writeError maps engine error kinds to status codes: validation 400,
// duplicate 409, auth 401, anything else 500.
func (h *AuthHandler) writeError(c *gin.Context, err error) {
	var vErr *application.ValidationError
	var dErr *application.DuplicateError
	var aErr *application.AuthError
	switch {
	case errors.As(err, &vErr):
		response.Error(c, http.StatusBadRequest, vErr.Message, nil)
	case errors.As(err, &dErr):
		response.Error(c, http.StatusConflict, dErr.Error(), gin.H{"field": dErr.Field})
	case errors.As(err, &aErr):
		response.Error(c, http.StatusUnauthorized, aErr.Message, nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unexpected auth failure")
		}
		response.Error(c, http.StatusInternalServerError, "an unexpected error occurred", nil)
	}
}
