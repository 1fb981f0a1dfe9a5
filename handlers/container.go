package handlers

import (
	"github.com/trackline/tracker/events"
	"github.com/trackline/tracker/services"
)

type Handlers struct {
	Auth       *AuthHandler
	Project    *ProjectHandler
	Ticket     *TicketHandler
	Attachment *AttachmentHandler
	Audit      *AuditHandler
	WS         *WSHandler
}

func New(svc *services.Services, hub *events.Hub) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.User),
		Project:    NewProjectHandler(svc.Project, svc.Ticket),
		Ticket:     NewTicketHandler(svc.Ticket, svc.User, hub),
		Attachment: NewAttachmentHandler(svc.Ticket),
		Audit:      NewAuditHandler(svc.Audit),
		WS:         NewWSHandler(hub),
	}
}
