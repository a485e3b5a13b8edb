package middleware

import (
	"exam_studio_backend/internal/config"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-middleware-tests-32b"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
}

func testToken(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "a@b.c", Role: role}
	user.ID = 1
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// 必须登录的路由
	router.GET("/private", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": util.GetUserFromContext(c) != nil})
	})

	// 可选认证：匿名也放行，有凭证则注入用户
	router.GET("/optional", TryAuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": util.GetUserFromContext(c) != nil})
	})

	// 仅管理员
	router.DELETE("/admin", AuthMiddleware(cfg), RoleMiddleware(model.Admin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	router := newAuthRouter(testConfig())

	w := doRequest(router, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestAuthMiddlewareAcceptsToken(t *testing.T) {
	router := newAuthRouter(testConfig())

	w := doRequest(router, http.MethodGet, "/private", testToken(t, model.Author))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":true}`, w.Body.String())
}

func TestTryAuthMiddlewarePassesAnonymous(t *testing.T) {
	router := newAuthRouter(testConfig())

	// 没有凭证也放行，上下文里没有用户
	w := doRequest(router, http.MethodGet, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":false}`, w.Body.String())
}

func TestTryAuthMiddlewareInjectsUser(t *testing.T) {
	router := newAuthRouter(testConfig())

	w := doRequest(router, http.MethodGet, "/optional", testToken(t, model.Author))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":true}`, w.Body.String())
}

func TestTryAuthMiddlewareIgnoresBadToken(t *testing.T) {
	router := newAuthRouter(testConfig())

	w := doRequest(router, http.MethodGet, "/optional", "not-a-jwt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":false}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	router := newAuthRouter(testConfig())

	w := doRequest(router, http.MethodDelete, "/admin", testToken(t, model.Author))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodDelete, "/admin", testToken(t, model.Admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
}
