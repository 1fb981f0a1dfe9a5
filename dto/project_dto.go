package dto

type ProjectForm struct {
	Title       string `form:"title" binding:"required,max=100"`
	Description string `form:"description"`
}
