package services

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/utils"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	repos *repositories.Repos
}

func NewProjectService(repos *repositories.Repos) *ProjectService {
	return &ProjectService{repos: repos}
}

func (s *ProjectService) ListProjects() ([]models.Project, error) {
	return s.repos.Project.ListProjects()
}

func (s *ProjectService) GetProject(id uint) (models.Project, error) {
	project, err := s.repos.Project.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project, ErrProjectNotFound
		}
		return project, err
	}
	return project, nil
}

func (s *ProjectService) CreateProject(c *gin.Context, ownerID uint, input dto.ProjectForm) (models.Project, error) {
	project := models.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     ownerID,
	}

	if err := s.repos.Project.CreateProject(&project); err != nil {
		return project, err
	}

	utils.LogAuditWithConsole(c, "create", "project", fmt.Sprint(project.ID), nil, project, "project created", s.repos.Audit)
	return project, nil
}

func (s *ProjectService) UpdateProject(c *gin.Context, id uint, input dto.ProjectForm) (models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return project, err
	}

	old := project
	project.Title = input.Title
	project.Description = input.Description

	if err := s.repos.Project.UpdateProject(&project); err != nil {
		return project, err
	}

	utils.LogAuditWithConsole(c, "update", "project", fmt.Sprint(project.ID), old, project, "project updated", s.repos.Audit)
	return project, nil
}
