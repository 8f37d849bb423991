package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func csrfTestConfig() *config.Config {
	return &config.Config{
		JWT:  config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		CSRF: config.CSRFConfig{Secret: "csrf-secret", TTL: 30 * time.Minute},
	}
}

func csrfTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", AuthMiddleware(cfg), CSRFMiddleware(cfg))
	group.POST("/protected", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	group.GET("/read", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func csrfTestJWT(t *testing.T, cfg *config.Config, userID uint) string {
	t.Helper()
	user := &model.User{Role: model.Partner, Email: "partner@example.com"}
	user.ID = userID
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}
	return token
}

func TestCSRFMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := csrfTestConfig()
	router := csrfTestRouter(cfg)
	jwt := csrfTestJWT(t, cfg, 42)
	csrf := util.GenerateCSRFToken("42", cfg.CSRF.Secret, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)
	req.Header.Set("X-CSRF-Token", csrf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCSRFMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := csrfTestConfig()
	router := csrfTestRouter(cfg)
	jwt := csrfTestJWT(t, cfg, 42)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFMiddlewareRejectsTokenForOtherUser(t *testing.T) {
	cfg := csrfTestConfig()
	router := csrfTestRouter(cfg)
	jwt := csrfTestJWT(t, cfg, 42)
	csrf := util.GenerateCSRFToken("43", cfg.CSRF.Secret, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)
	req.Header.Set("X-CSRF-Token", csrf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFMiddlewareSkipsSafeMethods(t *testing.T) {
	cfg := csrfTestConfig()
	router := csrfTestRouter(cfg)
	jwt := csrfTestJWT(t, cfg, 42)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
