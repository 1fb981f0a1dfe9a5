package repositories

import (
	"github.com/trackline/tracker/db"
	"github.com/trackline/tracker/models"
)

type TicketRepo interface {
	CreateTicket(ticket *models.Ticket) error
	UpdateTicket(ticket *models.Ticket) error
	ReplaceAssignees(ticket *models.Ticket, assignees []models.User) error
	// GetTicketByProjectAndID resolves a ticket scoped to its project.
	GetTicketByProjectAndID(projectID, id uint) (models.Ticket, error)
	// GetEditableTicket is the same lookup but excludes withdrawn tickets
	// (state 0), which must not be editable.
	GetEditableTicket(projectID, id uint) (models.Ticket, error)
	// ListByAssignee returns the non-withdrawn tickets assigned to the user,
	// ordered by ascending state then most recently modified first.
	ListByAssignee(userID uint) ([]models.Ticket, error)
	// ListByProjectAndStates returns the project's tickets in the given states.
	ListByProjectAndStates(projectID uint, states []int) ([]models.Ticket, error)
}

type DBTicketRepo struct{}

func (r *DBTicketRepo) CreateTicket(ticket *models.Ticket) error {
	return db.DB.Create(ticket).Error
}

func (r *DBTicketRepo) UpdateTicket(ticket *models.Ticket) error {
	return db.DB.Save(ticket).Error
}

func (r *DBTicketRepo) ReplaceAssignees(ticket *models.Ticket, assignees []models.User) error {
	return db.DB.Model(ticket).Association("Assignees").Replace(assignees)
}

func (r *DBTicketRepo) GetTicketByProjectAndID(projectID, id uint) (models.Ticket, error) {
	var ticket models.Ticket
	err := db.DB.
		Where("project_id = ?", projectID).
		Preload("Assignees").
		First(&ticket, id).Error
	return ticket, err
}

func (r *DBTicketRepo) GetEditableTicket(projectID, id uint) (models.Ticket, error) {
	var ticket models.Ticket
	err := db.DB.
		Where("project_id = ? AND state <> 0", projectID).
		Preload("Assignees").
		First(&ticket, id).Error
	return ticket, err
}

func (r *DBTicketRepo) ListByAssignee(userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.DB.
		Joins("JOIN ticket_assignees ta ON ta.ticket_id = tickets.id").
		Where("ta.user_id = ? AND tickets.state <> 0", userID).
		Preload("Assignees").
		Preload("Project").
		Order("tickets.state asc, tickets.updated_at desc").
		Find(&tickets).Error
	return tickets, err
}

func (r *DBTicketRepo) ListByProjectAndStates(projectID uint, states []int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := db.DB.
		Where("project_id = ? AND state IN ?", projectID, states).
		Preload("Assignees").
		Order("updated_at desc").
		Find(&tickets).Error
	return tickets, err
}
