package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/config"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
)

type AuthHandler struct {
	svc *services.UserService
}

func NewAuthHandler(svc *services.UserService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render.HTML(c, http.StatusOK, "login.pongo2", pongo2.Context{
		"form_title": "Log in",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginForm
	if err := c.ShouldBind(&input); err != nil {
		render.HTML(c, http.StatusBadRequest, "login.pongo2", pongo2.Context{
			"form_title": "Log in",
			"errors":     err.Error(),
			"username":   input.Username,
		})
		return
	}

	_, token, err := h.svc.Login(input.Username, input.Password)
	if err != nil {
		render.HTML(c, http.StatusUnauthorized, "login.pongo2", pongo2.Context{
			"form_title": "Log in",
			"errors":     "Invalid username or password",
			"username":   input.Username,
		})
		return
	}

	c.SetCookie("token", token, 24*3600, "/", "", config.CookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/projects")
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render.HTML(c, http.StatusOK, "register.pongo2", pongo2.Context{
		"form_title": "Register",
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterForm
	if err := c.ShouldBind(&input); err != nil {
		render.HTML(c, http.StatusBadRequest, "register.pongo2", pongo2.Context{
			"form_title": "Register",
			"errors":     err.Error(),
			"form":       input,
		})
		return
	}

	if err := h.svc.Register(input); err != nil {
		status := http.StatusInternalServerError
		if err == services.ErrUsernameTaken {
			status = http.StatusConflict
		}
		render.HTML(c, status, "register.pongo2", pongo2.Context{
			"form_title": "Register",
			"errors":     err.Error(),
			"form":       input,
		})
		return
	}

	utils.Success(c, "Account created, you can now log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", config.CookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
