package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
)

type AuditHandler struct {
	svc *services.AuditService
}

func NewAuditHandler(svc *services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	params := repositories.AuditQueryParams{Limit: 100}

	if userID, err := utils.ParseQueryUintParam(c, "user_id"); err == nil {
		params.UserID = &userID
	}
	if resourceType := c.Query("resource_type"); resourceType != "" {
		params.ResourceType = &resourceType
	}
	if action := c.Query("action"); action != "" {
		params.Action = &action
	}

	logs, err := h.svc.GetAuditLogs(params)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list audit logs")
		return
	}

	render.HTML(c, http.StatusOK, "audit_list.pongo2", pongo2.Context{
		"logs": logs,
	})
}
