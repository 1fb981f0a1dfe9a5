package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/types"
)

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// GetProjectFromContext returns the project resolved by the ProjectContext
// middleware. It is computed once per request and shared by every handler
// under the /projects/:project_id group.
func GetProjectFromContext(c *gin.Context) (models.Project, error) {
	projectVal, exists := c.Get("current_project")
	if !exists {
		return models.Project{}, errors.New("project not found in context")
	}

	project, ok := projectVal.(models.Project)
	if !ok {
		return models.Project{}, errors.New("invalid project type in context")
	}

	return project, nil
}
