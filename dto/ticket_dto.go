package dto

type TicketForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description"`
	Assignees   []uint `form:"assignees"`
}

type TransitionForm struct {
	Transition string `form:"transition"`
}
