package services

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/utils"
	"github.com/trackline/tracker/workflow"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// TransitionResult reports a successfully applied state change.
type TransitionResult struct {
	Ticket models.Ticket
	Verb   string
	From   int
	To     int
}

type TicketService struct {
	repos *repositories.Repos
}

func NewTicketService(repos *repositories.Repos) *TicketService {
	return &TicketService{repos: repos}
}

func (s *TicketService) CreateTicket(c *gin.Context, projectID uint, input dto.TicketForm) (models.Ticket, error) {
	ticket := models.Ticket{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		State:       workflow.Default.Initial(),
		Assignees:   assigneeRefs(input.Assignees),
	}

	if err := s.repos.Ticket.CreateTicket(&ticket); err != nil {
		return ticket, err
	}

	utils.LogAuditWithConsole(c, "create", "ticket", fmt.Sprint(ticket.ID), nil, ticket, "ticket created", s.repos.Audit)
	return ticket, nil
}

// UpdateTicket edits a ticket scoped to its project. Withdrawn tickets
// (state 0) are filtered out by the lookup and surface as not found.
func (s *TicketService) UpdateTicket(c *gin.Context, projectID, ticketID uint, input dto.TicketForm) (models.Ticket, error) {
	ticket, err := s.repos.Ticket.GetEditableTicket(projectID, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, ErrTicketNotFound
		}
		return ticket, err
	}

	old := ticket
	ticket.Title = input.Title
	ticket.Description = input.Description

	if err := s.repos.Ticket.UpdateTicket(&ticket); err != nil {
		return ticket, err
	}
	if err := s.repos.Ticket.ReplaceAssignees(&ticket, assigneeRefs(input.Assignees)); err != nil {
		return ticket, err
	}

	utils.LogAuditWithConsole(c, "update", "ticket", fmt.Sprint(ticket.ID), old, ticket, "ticket updated", s.repos.Audit)
	return ticket, nil
}

func (s *TicketService) GetTicket(projectID, ticketID uint) (models.Ticket, error) {
	ticket, err := s.repos.Ticket.GetEditableTicket(projectID, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, ErrTicketNotFound
		}
		return ticket, err
	}
	return ticket, nil
}

// ListAssigned returns the caller's open tickets ordered by state, most
// recently touched first within each state bucket.
func (s *TicketService) ListAssigned(userID uint) ([]models.Ticket, error) {
	return s.repos.Ticket.ListByAssignee(userID)
}

// PartitionProjectTickets splits the project's active tickets into the ones
// assigned to the user and everyone else's. A ticket lands in exactly one
// bucket.
func (s *TicketService) PartitionProjectTickets(projectID, userID uint) (mine, others []models.Ticket, err error) {
	tickets, err := s.repos.Ticket.ListByProjectAndStates(projectID, workflow.Default.ActiveStates())
	if err != nil {
		return nil, nil, err
	}

	for _, t := range tickets {
		if t.IsAssignedTo(userID) {
			mine = append(mine, t)
		} else {
			others = append(others, t)
		}
	}
	return mine, others, nil
}

// ApplyTransition dispatches a named transition against the ticket's current
// state. Unknown or out-of-state transition names leave the ticket untouched
// and return ErrInvalidTransition.
func (s *TicketService) ApplyTransition(c *gin.Context, projectID, ticketID uint, name string) (TransitionResult, error) {
	var res TransitionResult

	ticket, err := s.repos.Ticket.GetTicketByProjectAndID(projectID, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrTicketNotFound
		}
		return res, err
	}

	target, verb, ok := workflow.Default.Apply(ticket.State, name)
	if !ok {
		return res, ErrInvalidTransition
	}

	from := ticket.State
	ticket.State = target
	if err := s.repos.Ticket.UpdateTicket(&ticket); err != nil {
		return res, err
	}

	utils.LogAuditWithConsole(c, "transition", "ticket", fmt.Sprint(ticket.ID),
		gin.H{"state": from}, gin.H{"state": target}, "ticket "+verb, s.repos.Audit)

	return TransitionResult{Ticket: ticket, Verb: verb, From: from, To: target}, nil
}

// AttachFile records the object-store key of a ticket's uploaded attachment.
func (s *TicketService) AttachFile(c *gin.Context, projectID, ticketID uint, key string) (models.Ticket, error) {
	ticket, err := s.repos.Ticket.GetEditableTicket(projectID, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, ErrTicketNotFound
		}
		return ticket, err
	}

	old := ticket.AttachmentKey
	ticket.AttachmentKey = key
	if err := s.repos.Ticket.UpdateTicket(&ticket); err != nil {
		return ticket, err
	}

	utils.LogAuditWithConsole(c, "attach", "ticket", fmt.Sprint(ticket.ID),
		gin.H{"attachment_key": old}, gin.H{"attachment_key": key}, "attachment uploaded", s.repos.Audit)
	return ticket, nil
}

func assigneeRefs(ids []uint) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		var u models.User
		u.ID = id
		users = append(users, u)
	}
	return users
}
