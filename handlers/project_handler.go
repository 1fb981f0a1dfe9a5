package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
	"github.com/trackline/tracker/workflow"
)

type ProjectHandler struct {
	svc     *services.ProjectService
	tickets *services.TicketService
}

func NewProjectHandler(svc *services.ProjectService, tickets *services.TicketService) *ProjectHandler {
	return &ProjectHandler{svc: svc, tickets: tickets}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list projects")
		return
	}
	render.HTML(c, http.StatusOK, "project_list.pongo2", pongo2.Context{
		"projects": projects,
	})
}

func (h *ProjectHandler) NewForm(c *gin.Context) {
	render.HTML(c, http.StatusOK, "project_form.pongo2", pongo2.Context{
		"form_title": "Create project",
		"action":     "/projects/new",
	})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input dto.ProjectForm
	if err := c.ShouldBind(&input); err != nil {
		render.HTML(c, http.StatusBadRequest, "project_form.pongo2", pongo2.Context{
			"form_title": "Create project",
			"action":     "/projects/new",
			"errors":     err.Error(),
			"form":       input,
		})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if _, err := h.svc.CreateProject(c, userID, input); err != nil {
		c.String(http.StatusInternalServerError, "failed to create project")
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

func (h *ProjectHandler) EditForm(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	render.HTML(c, http.StatusOK, "project_form.pongo2", pongo2.Context{
		"form_title": "Edit " + project.Title,
		"action":     projectPath(project.ID) + "/edit",
		"form":       dto.ProjectForm{Title: project.Title, Description: project.Description},
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	var input dto.ProjectForm
	if err := c.ShouldBind(&input); err != nil {
		render.HTML(c, http.StatusBadRequest, "project_form.pongo2", pongo2.Context{
			"form_title": "Edit " + project.Title,
			"action":     projectPath(project.ID) + "/edit",
			"errors":     err.Error(),
			"form":       input,
		})
		return
	}

	if _, err := h.svc.UpdateProject(c, project.ID, input); err != nil {
		if err == services.ErrProjectNotFound {
			render.NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "failed to update project")
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

// Detail shows the project's active tickets partitioned into the caller's
// and everyone else's, with the transition actions valid for each ticket.
func (h *ProjectHandler) Detail(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		render.NotFound(c)
		return
	}

	userID, _ := utils.GetUserIDFromContext(c)
	mine, others, err := h.tickets.PartitionProjectTickets(project.ID, userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load tickets")
		return
	}

	verbs := make(map[uint]map[string]string, len(mine)+len(others))
	for _, t := range mine {
		verbs[t.ID] = workflow.Default.Verbs(t.State)
	}
	for _, t := range others {
		verbs[t.ID] = workflow.Default.Verbs(t.State)
	}

	render.HTML(c, http.StatusOK, "project_detail.pongo2", pongo2.Context{
		"project":    project,
		"my_tickets": mine,
		"tickets":    others,
		"verbs":      verbs,
	})
}
