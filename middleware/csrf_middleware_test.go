package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/trackline/tracker/middleware"
)

func csrfRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CSRF())
	r.GET("/page", func(c *gin.Context) {
		token := c.GetString("csrf_token")
		c.String(http.StatusOK, token)
	})
	r.POST("/submit", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestCSRFMintsTokenOnGet(t *testing.T) {
	r := csrfRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var token string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "csrf_token" {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token)
	require.Equal(t, token, w.Body.String())
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	r := csrfRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	r := csrfRouter()

	form := url.Values{"csrf_token": {"not-the-cookie"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "cookie-token"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFAcceptsMatchingFormToken(t *testing.T) {
	r := csrfRouter()

	form := url.Values{"csrf_token": {"cookie-token"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "cookie-token"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFAcceptsMatchingHeaderToken(t *testing.T) {
	r := csrfRouter()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-CSRF-Token", "cookie-token")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "cookie-token"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
