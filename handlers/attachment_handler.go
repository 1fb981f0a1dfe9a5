package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/minio"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
)

type AttachmentHandler struct {
	svc *services.TicketService
}

func NewAttachmentHandler(svc *services.TicketService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	ticketID, err := utils.ParseIDParam(c, "ticket_id")
	if err != nil {
		render.NotFound(c)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, "No file selected.")
		c.Redirect(http.StatusSeeOther, projectPath(project.ID))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer file.Close()

	key := fmt.Sprintf("projects/%d/tickets/%d/%s", project.ID, ticketID, filepath.Base(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := minio.PutAttachment(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		c.String(http.StatusInternalServerError, "failed to store attachment")
		return
	}

	if _, err := h.svc.AttachFile(c, project.ID, ticketID, key); err != nil {
		if err == services.ErrTicketNotFound {
			render.NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "failed to update ticket")
		return
	}

	utils.Success(c, "Attachment uploaded.")
	c.Redirect(http.StatusSeeOther, projectPath(project.ID))
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	ticketID, err := utils.ParseIDParam(c, "ticket_id")
	if err != nil {
		render.NotFound(c)
		return
	}

	ticket, err := h.svc.GetTicket(project.ID, ticketID)
	if err != nil || ticket.AttachmentKey == "" {
		render.NotFound(c)
		return
	}

	obj, err := minio.GetAttachment(c.Request.Context(), ticket.AttachmentKey)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to fetch attachment")
		return
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		render.NotFound(c)
		return
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filepath.Base(ticket.AttachmentKey)),
	}
	c.DataFromReader(http.StatusOK, stat.Size, stat.ContentType, obj, extraHeaders)
}
