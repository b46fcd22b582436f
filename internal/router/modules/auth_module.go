package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emartsoft/login-service/internal/container"
	handlers "github.com/emartsoft/login-service/internal/interface/http"
	"github.com/emartsoft/login-service/internal/interface/middleware"
	"github.com/emartsoft/login-service/pkg/helpers"
)

// AuthModule wires the auth handlers into routes.
// Public: POST /api/signup, POST /api/login (rate limited per IP).
// Protected: GET /api/profile (bearer token).
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP()))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
