package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieName = "veloura_admin"

// mapSessionStore backs admin sessions in memory for middleware tests
type mapSessionStore struct {
	tokens map[string]bool
}

func (s *mapSessionStore) Save(_ context.Context, token string, _ time.Duration) error {
	s.tokens[token] = true
	return nil
}

func (s *mapSessionStore) Touch(_ context.Context, token string, _ time.Duration) (bool, error) {
	return s.tokens[token], nil
}

func (s *mapSessionStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func setupAdminMiddlewareTest(t *testing.T) (*gin.Engine, service.AdminService) {
	gin.SetMode(gin.TestMode)

	adminService, err := service.NewAdminService(
		&mapSessionStore{tokens: make(map[string]bool)},
		config.AdminConfig{Password: "opensesame", SessionTTL: time.Hour},
	)
	require.NoError(t, err)

	router := gin.New()
	adminMiddleware := NewAdminMiddleware(adminService, testCookieName)
	router.GET("/admin/ping", adminMiddleware.Require(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router, adminService
}

func TestAdminMiddleware_Require_NoCookie(t *testing.T) {
	router, _ := setupAdminMiddlewareTest(t)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Admin login required")
}

func TestAdminMiddleware_Require_UnknownToken(t *testing.T) {
	router, _ := setupAdminMiddlewareTest(t)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_Require_ValidSession(t *testing.T) {
	router, adminService := setupAdminMiddlewareTest(t)

	token, err := adminService.Login(context.Background(), "opensesame")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_Require_RevokedSession(t *testing.T) {
	router, adminService := setupAdminMiddlewareTest(t)

	ctx := context.Background()
	token, err := adminService.Login(ctx, "opensesame")
	require.NoError(t, err)
	require.NoError(t, adminService.Logout(ctx, token))

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
