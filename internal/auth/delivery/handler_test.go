package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authdomain "newspulse-backend/internal/auth/domain"
	authdto "newspulse-backend/internal/auth/dto"
	"newspulse-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct{}

func (s *stubAuth) FirebaseSignIn(ctx context.Context, idToken string) (*authdto.TokenResponse, error) {
	if idToken != "good" {
		return nil, usecase.ErrInvalidIDToken
	}
	return &authdto.TokenResponse{AccessToken: "a", RefreshToken: "r", User: &authdomain.User{ID: "u1"}}, nil
}

func (s *stubAuth) RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	return nil, usecase.ErrRefreshTokenExpired
}

func (s *stubAuth) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func (s *stubAuth) ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error) {
	switch accessToken {
	case "admin":
		return &authdomain.User{ID: "u-admin", Email: "boss@example.com"}, nil
	case "user":
		return &authdomain.User{ID: "u1", Email: "ada@example.com"}, nil
	}
	return nil, usecase.ErrInvalidToken
}

func (s *stubAuth) Me(ctx context.Context, userID string) (*authdomain.User, error) {
	return &authdomain.User{ID: userID}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := &stubAuth{}
	h := NewAuthHandler(uc)
	isAdmin := func(email string) bool { return email == "boss@example.com" }

	r := gin.New()
	r.POST("/api/auth/firebase", h.FirebaseSignIn)
	r.POST("/api/auth/refresh", h.RefreshToken)
	protected := r.Group("/api", AuthMiddleware(uc))
	protected.GET("/auth/me", h.Me)
	protected.GET("/admin/ping", AdminOnly(isAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFirebaseSignInHandler(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/api/auth/firebase", "", `{"id_token":"good"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"a"`)

	w = do(r, http.MethodPost, "/api/auth/firebase", "", `{"id_token":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/firebase", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandler_Expired(t *testing.T) {
	w := do(newRouter(), http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"old"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/auth/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/auth/me", "nope", "").Code)

	w := do(r, http.MethodGet, "/api/auth/me", "user", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestAdminOnly(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/admin/ping", "user", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/ping", "admin", "").Code)
}
