package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/utils"
	"gorm.io/gorm"
)

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return ""
}

func wantsHTML(c *gin.Context) bool {
	accept := strings.ToLower(c.GetHeader("Accept"))
	return accept == "" || strings.Contains(accept, "text/html")
}

// RequireAuth gates protected pages. Browser requests without a valid token
// are redirected to the login flow; API-style requests get a plain 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			rejectUnauthenticated(c)
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.SetCookie("token", "", -1, "/", "", false, true)
			rejectUnauthenticated(c)
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// SoftAuth injects claims when a valid token is present but never rejects the
// request. Pages using it degrade gracefully for anonymous visitors.
func SoftAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if claims, err := ParseToken(tokenStr); err == nil {
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/login")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
	}
	c.Abort()
}

// ProjectContext resolves the :project_id path parameter exactly once per
// request and stores the project under "current_project" for every handler
// and rendered template downstream.
func ProjectContext(repos *repositories.Repos) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "project_id")
		if err != nil {
			render.NotFound(c)
			return
		}

		project, err := repos.Project.GetProjectByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				render.NotFound(c)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set("current_project", project)
		c.Next()
	}
}
