package services_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/repositories"
	"github.com/trackline/tracker/repositories/mock_repositories"
	"github.com/trackline/tracker/services"
	"github.com/trackline/tracker/utils"
	"gorm.io/gorm"
)

func setupProjectMocks(t *testing.T) (*services.ProjectService, *mock_repositories.MockProjectRepo, *gin.Context) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock_repositories.NewMockProjectRepo(ctrl)
	mockAudit := mock_repositories.NewMockAuditRepo(ctrl)

	repos := &repositories.Repos{
		Project: mockProject,
		Audit:   mockAudit,
	}

	svc := services.NewProjectService(repos)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	utils.LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repositories.AuditRepo) {
	}

	return svc, mockProject, c
}

func TestCreateProjectSetsOwner(t *testing.T) {
	svc, mockProject, c := setupProjectMocks(t)

	mockProject.EXPECT().CreateProject(gomock.Any()).DoAndReturn(func(project *models.Project) error {
		require.Equal(t, uint(42), project.OwnerID)
		project.ID = 7
		return nil
	})

	project, err := svc.CreateProject(c, 42, dto.ProjectForm{Title: "Billing", Description: "invoices"})
	require.NoError(t, err)
	require.Equal(t, uint(7), project.ID)
	require.Equal(t, "Billing", project.Title)
}

func TestGetProjectNotFound(t *testing.T) {
	svc, mockProject, _ := setupProjectMocks(t)

	mockProject.EXPECT().GetProjectByID(uint(99)).Return(models.Project{}, gorm.ErrRecordNotFound)

	_, err := svc.GetProject(99)
	require.ErrorIs(t, err, services.ErrProjectNotFound)
}

func TestUpdateProjectOverwritesFields(t *testing.T) {
	svc, mockProject, c := setupProjectMocks(t)

	existing := models.Project{Title: "Old", Description: "old desc", OwnerID: 42}
	existing.ID = 7

	mockProject.EXPECT().GetProjectByID(uint(7)).Return(existing, nil)
	mockProject.EXPECT().UpdateProject(gomock.Any()).DoAndReturn(func(project *models.Project) error {
		require.Equal(t, "New", project.Title)
		require.Equal(t, uint(42), project.OwnerID)
		return nil
	})

	project, err := svc.UpdateProject(c, 7, dto.ProjectForm{Title: "New", Description: "new desc"})
	require.NoError(t, err)
	require.Equal(t, "new desc", project.Description)
}

func TestUpdateProjectNotFound(t *testing.T) {
	svc, mockProject, c := setupProjectMocks(t)

	mockProject.EXPECT().GetProjectByID(uint(99)).Return(models.Project{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateProject(c, 99, dto.ProjectForm{Title: "x"})
	require.ErrorIs(t, err, services.ErrProjectNotFound)
}
