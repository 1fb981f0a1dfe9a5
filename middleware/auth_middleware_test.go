package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/trackline/tracker/config"
	"github.com/trackline/tracker/middleware"
	"github.com/trackline/tracker/types"
)

func authRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "test-secret"
	middleware.Init()

	r := gin.New()
	r.GET("/private", middleware.RequireAuth(), func(c *gin.Context) {
		claims := c.MustGet("claims").(*types.Claims)
		c.String(http.StatusOK, claims.Username)
	})
	r.GET("/soft", middleware.SoftAuth(), func(c *gin.Context) {
		if _, exists := c.Get("claims"); exists {
			c.String(http.StatusOK, "known")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestRequireAuthRedirectsBrowsers(t *testing.T) {
	r := authRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthRejectsAPIClients(t *testing.T) {
	r := authRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsTokenCookie(t *testing.T) {
	r := authRouter(t)

	token, err := middleware.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice", w.Body.String())
}

func TestRequireAuthAcceptsBearerHeader(t *testing.T) {
	r := authRouter(t)

	token, err := middleware.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := authRouter(t)

	token, err := middleware.GenerateToken(42, "alice", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSoftAuthNeverRejects(t *testing.T) {
	r := authRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/soft", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "anonymous", w.Body.String())

	token, err := middleware.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/soft", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "known", w.Body.String())
}
