package repositories

import (
	"github.com/trackline/tracker/db"
	"github.com/trackline/tracker/models"
)

type ProjectRepo interface {
	CreateProject(p *models.Project) error
	UpdateProject(p *models.Project) error
	GetProjectByID(id uint) (models.Project, error)
	ListProjects() ([]models.Project, error)
}

type DBProjectRepo struct{}

func (r *DBProjectRepo) CreateProject(p *models.Project) error {
	return db.DB.Create(p).Error
}

func (r *DBProjectRepo) UpdateProject(p *models.Project) error {
	return db.DB.Save(p).Error
}

func (r *DBProjectRepo) GetProjectByID(id uint) (models.Project, error) {
	var project models.Project
	err := db.DB.First(&project, id).Error
	return project, err
}

func (r *DBProjectRepo) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := db.DB.Find(&projects).Error
	return projects, err
}
