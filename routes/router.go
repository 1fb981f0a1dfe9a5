package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/events"
	"github.com/trackline/tracker/handlers"
	"github.com/trackline/tracker/middleware"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/services"
)

func RegisterRoutes(r *gin.Engine) {

	// init
	repos := repositories.New()
	svc := services.New(repos)
	hub := events.NewHub()
	h := handlers.New(svc, hub)

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.CSRF())

	// public
	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.GET("/register", h.Auth.RegisterPage)
	r.POST("/register", h.Auth.Register)

	// my tickets degrades gracefully for anonymous visitors
	r.GET("/tickets/my", middleware.SoftAuth(), h.Ticket.MyTickets)

	auth := r.Group("/", middleware.RequireAuth())
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/audit", h.Audit.List)

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.GET("/new", h.Project.NewForm)
			projects.POST("/new", h.Project.Create)

			project := projects.Group("/:project_id", middleware.ProjectContext(repos))
			{
				project.GET("", h.Project.Detail)
				project.GET("/edit", h.Project.EditForm)
				project.POST("/edit", h.Project.Update)

				project.GET("/tickets/new", h.Ticket.NewForm)
				project.POST("/tickets/new", h.Ticket.Create)
				project.GET("/tickets/:ticket_id/edit", h.Ticket.EditForm)
				project.POST("/tickets/:ticket_id/edit", h.Ticket.Update)

				// transition is POST-only; other methods never reach the handler
				project.POST("/tickets/:ticket_id/transition", h.Ticket.Transition)

				project.POST("/tickets/:ticket_id/attachment", h.Attachment.Upload)
				project.GET("/tickets/:ticket_id/attachment", h.Attachment.Download)

				project.GET("/events", h.WS.TicketEvents)
			}
		}
	}
}
