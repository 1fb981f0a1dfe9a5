package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trackline/tracker/config"
)

const csrfCookie = "csrf_token"

// CSRF implements double-submit cookie protection. Safe methods mint a token
// and expose it to templates; unsafe methods must echo it back in the form
// body or the X-CSRF-Token header.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			token, err := c.Cookie(csrfCookie)
			if err != nil || token == "" {
				token = uuid.NewString()
				c.SetCookie(csrfCookie, token, 3600, "/", "", config.CookieSecure, true)
			}
			c.Set("csrf_token", token)
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(csrfCookie)
		if err != nil || cookieToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing"})
			return
		}

		requestToken := c.PostForm("csrf_token")
		if requestToken == "" {
			requestToken = c.GetHeader("X-CSRF-Token")
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(requestToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token mismatch"})
			return
		}

		c.Set("csrf_token", cookieToken)
		c.Next()
	}
}
