package dto

type RegisterForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required,min=8"`
	Email    string `form:"email" binding:"omitempty,email"`
	FullName string `form:"full_name"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
