// File: middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("adminsession", store))

	// Test-only route to plant a workspace id in the session.
	router.GET("/seed", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionIDKey, "workspace-1")
		_ = session.Save()
		c.String(http.StatusOK, "ok")
	})
	router.GET("/protected", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, "granted")
	})
	return router
}

func TestAuthRequired_RedirectsAnonymous(t *testing.T) {
	router := setupAuthRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthRequired_PassesWithSession(t *testing.T) {
	router := setupAuthRouter()

	seed := httptest.NewRecorder()
	router.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/seed", nil))
	require.Equal(t, http.StatusOK, seed.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", rec.Body.String())
}
