package services_test

import (
	"errors"
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

func setupTicketMocks(t *testing.T) (*services.TicketService, *mock_repositories.MockTicketRepo, *gin.Context) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockTicket := mock_repositories.NewMockTicketRepo(ctrl)
	mockAudit := mock_repositories.NewMockAuditRepo(ctrl)

	repos := &repositories.Repos{
		Ticket: mockTicket,
		Audit:  mockAudit,
	}

	svc := services.NewTicketService(repos)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// audit writes are not under test here
	utils.LogAuditWithConsole = func(c *gin.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repositories.AuditRepo) {
	}

	return svc, mockTicket, c
}

func ticketWithState(id, projectID uint, state int, assignees ...uint) models.Ticket {
	t := models.Ticket{ProjectID: projectID, State: state}
	t.ID = id
	for _, uid := range assignees {
		var u models.User
		u.ID = uid
		t.Assignees = append(t.Assignees, u)
	}
	return t
}

func TestCreateTicketStartsInInitialState(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	mockTicket.EXPECT().CreateTicket(gomock.Any()).DoAndReturn(func(ticket *models.Ticket) error {
		require.Equal(t, 1, ticket.State)
		require.Equal(t, uint(7), ticket.ProjectID)
		return nil
	})

	ticket, err := svc.CreateTicket(c, 7, dto.TicketForm{Title: "broken build"})
	require.NoError(t, err)
	require.Equal(t, "broken build", ticket.Title)
}

func TestApplyTransitionValidVerb(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	mockTicket.EXPECT().GetTicketByProjectAndID(uint(7), uint(3)).Return(ticketWithState(3, 7, 1), nil)
	mockTicket.EXPECT().UpdateTicket(gomock.Any()).DoAndReturn(func(ticket *models.Ticket) error {
		require.Equal(t, 2, ticket.State)
		return nil
	})

	res, err := svc.ApplyTransition(c, 7, 3, "assign")
	require.NoError(t, err)
	require.Equal(t, "assigned", res.Verb)
	require.Equal(t, 1, res.From)
	require.Equal(t, 2, res.To)
}

func TestApplyTransitionInvalidVerbDoesNotPersist(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	// repeated invalid submissions never write
	for i := 0; i < 3; i++ {
		mockTicket.EXPECT().GetTicketByProjectAndID(uint(7), uint(3)).Return(ticketWithState(3, 7, 1), nil)
	}

	for i := 0; i < 3; i++ {
		_, err := svc.ApplyTransition(c, 7, 3, "resolve")
		require.ErrorIs(t, err, services.ErrInvalidTransition)
	}
}

func TestApplyTransitionUnknownVerb(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	mockTicket.EXPECT().GetTicketByProjectAndID(uint(7), uint(3)).Return(ticketWithState(3, 7, 2), nil)

	_, err := svc.ApplyTransition(c, 7, 3, "frobnicate")
	require.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestApplyTransitionTicketNotFound(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	mockTicket.EXPECT().GetTicketByProjectAndID(uint(7), uint(99)).Return(models.Ticket{}, gorm.ErrRecordNotFound)

	_, err := svc.ApplyTransition(c, 7, 99, "assign")
	require.ErrorIs(t, err, services.ErrTicketNotFound)
}

func TestUpdateTicketWithdrawnIsNotFound(t *testing.T) {
	svc, mockTicket, c := setupTicketMocks(t)

	// the editable lookup filters state 0 at the store
	mockTicket.EXPECT().GetEditableTicket(uint(7), uint(3)).Return(models.Ticket{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateTicket(c, 7, 3, dto.TicketForm{Title: "new title"})
	require.ErrorIs(t, err, services.ErrTicketNotFound)
}

func TestPartitionProjectTickets(t *testing.T) {
	svc, mockTicket, _ := setupTicketMocks(t)

	mockTicket.EXPECT().ListByProjectAndStates(uint(7), gomock.Any()).Return([]models.Ticket{
		ticketWithState(1, 7, 1, 42),
		ticketWithState(2, 7, 2),
		ticketWithState(3, 7, 3, 42, 99),
	}, nil)

	mine, others, err := svc.PartitionProjectTickets(7, 42)
	require.NoError(t, err)

	require.Len(t, mine, 2)
	require.Len(t, others, 1)
	require.Equal(t, uint(2), others[0].ID)

	// no ticket appears in both buckets
	seen := map[uint]bool{}
	for _, ticket := range append(mine, others...) {
		require.False(t, seen[ticket.ID])
		seen[ticket.ID] = true
	}
}

func TestPartitionProjectTicketsListError(t *testing.T) {
	svc, mockTicket, _ := setupTicketMocks(t)

	mockTicket.EXPECT().ListByProjectAndStates(uint(7), gomock.Any()).Return(nil, errors.New("db down"))

	_, _, err := svc.PartitionProjectTickets(7, 42)
	require.Error(t, err)
}
