package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamevault/backend/internal/models"
	"gamevault/backend/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, service.TokenPair, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, service.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(service.TokenPair), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, service.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(service.TokenPair), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*models.User, service.TokenPair, error) {
	args := m.Called(ctx, userID, refreshToken)
	if args.Get(0) == nil {
		return nil, service.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(service.TokenPair), args.Error(2)
}

func (m *MockAuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email, image string) (*models.User, error) {
	args := m.Called(ctx, userID, username, email, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) PatchProfile(ctx context.Context, userID uuid.UUID, patch service.ProfilePatch) (*models.User, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	return router
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns the access token and sets the refresh token cookie", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Username: "a", Email: "a@x.com", Image: "/logo.png"}
		pair := service.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "a", "a@x.com", "password123").Return(user, pair, nil)

		router := newAuthTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"a","email":"a@x.com","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"access_token":"access-token"`)
		// The refresh token travels only in the cookie, never in the body.
		assert.NotContains(t, w.Body.String(), "refresh-token")

		setCookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, setCookie, "refreshToken=refresh-token")
		assert.Contains(t, setCookie, "HttpOnly")
		assert.Contains(t, setCookie, "Secure")
		assert.Contains(t, setCookie, "SameSite=Strict")
	})

	t.Run("duplicate email yields 400 with the exact message", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "a", "a@x.com", "password123").
			Return(nil, service.TokenPair{}, service.ErrEmailTaken)

		router := newAuthTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"a","email":"a@x.com","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists.")
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("invalid payload never reaches the service", func(t *testing.T) {
		svc := new(MockAuthService)

		router := newAuthTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"a","email":"not-an-email","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("bad credentials yield 401", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "a@x.com", "wrong").
			Return(nil, service.TokenPair{}, service.ErrInvalidCredentials)

		router := newAuthTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password.")
	})

	t.Run("success rotates the cookie", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Username: "a", Email: "a@x.com"}
		pair := service.TokenPair{AccessToken: "access-token", RefreshToken: "rotated-token"}

		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "a@x.com", "password123").Return(user, pair, nil)

		router := newAuthTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"a@x.com","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "refreshToken=rotated-token")
	})
}
