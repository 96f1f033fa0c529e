package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	return cfg
}

func teacherToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	user := &model.User{Email: "teacher@school.ph", Role: model.Teacher}
	user.ID = 3
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func serveWithToken(handler gin.HandlerFunc, token string) (*util.Claims, int) {
	var claims *util.Claims
	r := gin.New()
	r.Use(handler)
	r.GET("/quiz", func(c *gin.Context) {
		claims = util.GetUserFromContext(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quiz", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return claims, w.Code
}

func TestTryAuthAttachesClaimsWhenTokenValid(t *testing.T) {
	cfg := testConfig()

	claims, code := serveWithToken(TryAuthMiddleware(cfg), teacherToken(t, cfg))
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, claims)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
}

func TestTryAuthLetsAnonymousThrough(t *testing.T) {
	claims, code := serveWithToken(TryAuthMiddleware(testConfig()), "")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, claims)
}

func TestTryAuthIgnoresBadToken(t *testing.T) {
	claims, code := serveWithToken(TryAuthMiddleware(testConfig()), "not-a-jwt")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, claims)
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	_, code := serveWithToken(AuthMiddleware(testConfig()), "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
