package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartsoft/login-service/internal/application"
	"github.com/emartsoft/login-service/internal/domain/entity"
	"github.com/emartsoft/login-service/internal/domain/repository"
	"github.com/emartsoft/login-service/internal/interface/middleware"
	"github.com/emartsoft/login-service/pkg/helpers"
	"github.com/emartsoft/login-service/pkg/validation"
)

type memRepo struct {
	accounts map[string]*entity.Account
	nextID   int
}

func newMemRepo() *memRepo { return &memRepo{accounts: map[string]*entity.Account{}} }

func (r *memRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, a := range r.accounts {
		if a.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	if a, ok := r.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) Create(_ context.Context, a *entity.Account) error {
	r.nextID++
	a.ID = "acc-" + strconv.Itoa(r.nextID)
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, a *entity.Account) error {
	if _, ok := r.accounts[a.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "#" + plain, nil }
func (plainHasher) Verify(plain, hash string) bool    { return hash == "#"+plain }

func newTestRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewService(newMemRepo(), plainHasher{}, jwt, nil, nil, nil, nil)
	h := NewAuthHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)
	protected := api.Group("/")
	protected.Use(middleware.BearerAuth(jwt))
	protected.GET("/profile", h.Profile)
	return r, jwt
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupBody() map[string]any {
	return map[string]any{
		"name":             "Asha Rao",
		"email":            "A@X.com",
		"phone":            "+911234567890",
		"password":         "Password@123",
		"confirm_password": "Password@123",
		"city":             "Mumbai",
	}
}

type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   map[string]any `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestSignup_Created(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	e := decode(t, w)
	assert.True(t, e.Success)
	assert.Equal(t, "a@x.com", e.Data["email"])
	assert.Equal(t, "Bearer", e.Data["token_type"])
	assert.NotEmpty(t, e.Data["token"])
	assert.Equal(t, []any{"user"}, e.Data["roles"])
}

func TestSignup_FieldValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	body := signupBody()
	body["email"] = "not-an-email"
	body["password"] = "short"
	w := doJSON(t, r, http.MethodPost, "/api/signup", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Contains(t, e.Error, "email")
	assert.Contains(t, e.Error, "password")
}

func TestSignup_PasswordMismatch(t *testing.T) {
	r, _ := newTestRouter(t)

	body := signupBody()
	body["confirm_password"] = "Password@124"
	w := doJSON(t, r, http.MethodPost, "/api/signup", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "passwords do not match", decode(t, w).Message)
}

func TestSignup_DuplicateConflict(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	e := decode(t, w)
	assert.Equal(t, "email already registered", e.Message)
	assert.Equal(t, "email", e.Error["field"])
}

func TestLogin_OK(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)

	w := doJSON(t, r, http.MethodPost, "/api/login", map[string]any{
		"email":    "a@x.com",
		"password": "Password@123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.NotEmpty(t, e.Data["token"])
	assert.Equal(t, "authentication successful", e.Message)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)

	wrong := doJSON(t, r, http.MethodPost, "/api/login", map[string]any{
		"email":    "a@x.com",
		"password": "Wrong@12345",
	}, nil)
	unknown := doJSON(t, r, http.MethodPost, "/api/login", map[string]any{
		"email":    "nobody@x.com",
		"password": "Wrong@12345",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, decode(t, wrong).Message, decode(t, unknown).Message)
}

func TestLogin_LockedAccountMessage(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)

	login := func(pwd string) *httptest.ResponseRecorder {
		return doJSON(t, r, http.MethodPost, "/api/login", map[string]any{
			"email":    "a@x.com",
			"password": pwd,
		}, nil)
	}

	// Five failures: all generic, including the locking one.
	for i := 0; i < 5; i++ {
		w := login("Wrong@12345")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "invalid email or password", decode(t, w).Message)
	}

	// The sixth attempt reports the lock, even with the right password.
	w := login("Password@123")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account is locked", decode(t, w).Message)
}

func TestProfile_RequiresBearer(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_OK(t *testing.T) {
	r, _ := newTestRouter(t)
	created := doJSON(t, r, http.MethodPost, "/api/signup", signupBody(), nil)
	token, _ := decode(t, created).Data["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.Equal(t, "a@x.com", e.Data["email"])
	assert.Equal(t, "Asha Rao", e.Data["name"])
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health("emart-login-service"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "emart-login-service", body["service"])
}
