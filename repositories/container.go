package repositories

type Repos struct {
	User    UserRepo
	Project ProjectRepo
	Ticket  TicketRepo
	Audit   AuditRepo
}

func New() *Repos {
	return &Repos{
		User:    &DBUserRepo{},
		Project: &DBProjectRepo{},
		Ticket:  &DBTicketRepo{},
		Audit:   &DBAuditRepo{},
	}
}
