package handlers

import (
	"fmt"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/events"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
)

type TicketHandler struct {
	svc   *services.TicketService
	users *services.UserService
	hub   *events.Hub
}

func NewTicketHandler(svc *services.TicketService, users *services.UserService, hub *events.Hub) *TicketHandler {
	return &TicketHandler{svc: svc, users: users, hub: hub}
}

func projectPath(projectID uint) string {
	return fmt.Sprintf("/projects/%d", projectID)
}

// MyTickets lists the caller's open tickets. Anonymous visitors get an empty
// page rather than an error.
func (h *TicketHandler) MyTickets(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		render.HTML(c, http.StatusOK, "my_tickets.pongo2", pongo2.Context{
			"tickets": nil,
		})
		return
	}

	tickets, err := h.svc.ListAssigned(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list tickets")
		return
	}

	render.HTML(c, http.StatusOK, "my_tickets.pongo2", pongo2.Context{
		"tickets": tickets,
	})
}

func (h *TicketHandler) NewForm(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	users, _ := h.users.ListUsers()
	render.HTML(c, http.StatusOK, "ticket_form.pongo2", pongo2.Context{
		"form_title": "Create ticket",
		"action":     projectPath(project.ID) + "/tickets/new",
		"users":      users,
	})
}

func (h *TicketHandler) Create(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	var input dto.TicketForm
	if err := c.ShouldBind(&input); err != nil {
		users, _ := h.users.ListUsers()
		render.HTML(c, http.StatusBadRequest, "ticket_form.pongo2", pongo2.Context{
			"form_title": "Create ticket",
			"action":     projectPath(project.ID) + "/tickets/new",
			"errors":     err.Error(),
			"form":       input,
			"users":      users,
		})
		return
	}

	if _, err := h.svc.CreateTicket(c, project.ID, input); err != nil {
		c.String(http.StatusInternalServerError, "failed to create ticket")
		return
	}

	c.Redirect(http.StatusSeeOther, projectPath(project.ID))
}

func (h *TicketHandler) EditForm(c *gin.Context) {
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
	if err != nil {
		render.NotFound(c)
		return
	}

	assigneeIDs := make([]uint, 0, len(ticket.Assignees))
	for _, u := range ticket.Assignees {
		assigneeIDs = append(assigneeIDs, u.ID)
	}

	users, _ := h.users.ListUsers()
	render.HTML(c, http.StatusOK, "ticket_form.pongo2", pongo2.Context{
		"form_title": "Edit " + ticket.Title,
		"action":     fmt.Sprintf("%s/tickets/%d/edit", projectPath(project.ID), ticket.ID),
		"form":       dto.TicketForm{Title: ticket.Title, Description: ticket.Description, Assignees: assigneeIDs},
		"ticket":     ticket,
		"users":      users,
	})
}

func (h *TicketHandler) Update(c *gin.Context) {
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

	var input dto.TicketForm
	if err := c.ShouldBind(&input); err != nil {
		users, _ := h.users.ListUsers()
		render.HTML(c, http.StatusBadRequest, "ticket_form.pongo2", pongo2.Context{
			"form_title": "Edit ticket",
			"action":     fmt.Sprintf("%s/tickets/%d/edit", projectPath(project.ID), ticketID),
			"errors":     err.Error(),
			"form":       input,
			"users":      users,
		})
		return
	}

	if _, err := h.svc.UpdateTicket(c, project.ID, ticketID, input); err != nil {
		if err == services.ErrTicketNotFound {
			render.NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "failed to update ticket")
		return
	}

	c.Redirect(http.StatusSeeOther, projectPath(project.ID))
}

// Transition dispatches a named workflow action against a ticket. Both the
// success and the failure branch enqueue exactly one flash message and
// redirect; an unknown or out-of-state transition never mutates the ticket.
func (h *TicketHandler) Transition(c *gin.Context) {
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

	var form dto.TransitionForm
	_ = c.ShouldBind(&form)

	res, err := h.svc.ApplyTransition(c, project.ID, ticketID, form.Transition)
	switch {
	case err == services.ErrTicketNotFound:
		render.NotFound(c)
		return
	case err == services.ErrInvalidTransition:
		utils.Error(c, fmt.Sprintf("Error! Could not %s ticket!", form.Transition))
	case err != nil:
		c.String(http.StatusInternalServerError, "failed to update ticket")
		return
	default:
		utils.Success(c, fmt.Sprintf("Your ticket has been successfully %s.", res.Verb))
		h.hub.Broadcast(events.TicketEvent{
			ProjectID:  project.ID,
			TicketID:   res.Ticket.ID,
			Transition: form.Transition,
			Verb:       res.Verb,
			FromState:  res.From,
			ToState:    res.To,
		})
	}

	redirectURL := c.Query("redirect")
	if redirectURL == "" {
		redirectURL = "/tickets/my"
	}
	c.Redirect(http.StatusSeeOther, redirectURL)
}
