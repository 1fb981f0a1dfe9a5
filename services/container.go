package services

import "github.com/trackline/tracker/repositories"

type Services struct {
	User    *UserService
	Project *ProjectService
	Ticket  *TicketService
	Audit   *AuditService
}

func New(repos *repositories.Repos) *Services {
	return &Services{
		User:    NewUserService(repos),
		Project: NewProjectService(repos),
		Ticket:  NewTicketService(repos),
		Audit:   NewAuditService(repos),
	}
}
