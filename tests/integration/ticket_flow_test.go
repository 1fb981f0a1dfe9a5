package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackline/tracker/models"
)

func userID(t *testing.T, username string) uint {
	var user models.User
	require.NoError(t, gormDB.Where("username = ?", username).First(&user).Error)
	return user.ID
}

func projectID(t *testing.T, title string) uint {
	var project models.Project
	require.NoError(t, gormDB.Where("title = ?", title).First(&project).Error)
	return project.ID
}

func ticketID(t *testing.T, title string) uint {
	var ticket models.Ticket
	require.NoError(t, gormDB.Where("title = ?", title).First(&ticket).Error)
	return ticket.ID
}

func ticketState(t *testing.T, id uint) int {
	var ticket models.Ticket
	require.NoError(t, gormDB.First(&ticket, id).Error)
	return ticket.State
}

func TestAnonymousMyTicketsIsEmpty(t *testing.T) {
	b := newBrowser(t)
	w := b.get("/tickets/my", http.StatusOK)
	require.Contains(t, w.Body.String(), "No tickets assigned to you.")
}

func TestLoginWrongPassword(t *testing.T) {
	b := newBrowser(t)
	b.get("/login", http.StatusOK)
	b.post("/register", url.Values{"username": {"carol"}, "password": {"correct-horse"}}, http.StatusSeeOther)
	b.post("/login", url.Values{"username": {"carol"}, "password": {"wrong-horse!"}}, http.StatusUnauthorized)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	b := newBrowser(t)
	b.get("/register", http.StatusOK)
	b.post("/register", url.Values{"username": {"dave"}, "password": {"correct-horse"}}, http.StatusSeeOther)
	b.post("/register", url.Values{"username": {"dave"}, "password": {"correct-horse"}}, http.StatusConflict)
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	b := newBrowser(t)
	// no prior GET, so no CSRF cookie was minted
	b.post("/login", url.Values{"username": {"x"}, "password": {"irrelevant"}}, http.StatusForbidden)
}

func TestProtectedPagesRedirectAnonymousBrowsers(t *testing.T) {
	b := newBrowser(t)
	w := b.get("/projects", http.StatusSeeOther)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestTicketLifecycle(t *testing.T) {
	b := signUp(t, "alice", "correct-horse")
	aliceID := userID(t, "alice")

	// create a project
	b.get("/projects/new", http.StatusOK)
	b.post("/projects/new", url.Values{"title": {"Billing"}, "description": {"invoices"}}, http.StatusSeeOther)
	pid := projectID(t, "Billing")
	projectPath := fmt.Sprintf("/projects/%d", pid)

	// create a ticket assigned to alice
	b.post(projectPath+"/tickets/new", url.Values{
		"title":     {"Fix invoice rounding"},
		"assignees": {fmt.Sprint(aliceID)},
	}, http.StatusSeeOther)
	tid := ticketID(t, "Fix invoice rounding")
	require.Equal(t, 1, ticketState(t, tid))

	// the ticket shows up under the caller's section of the project page
	w := b.get(projectPath, http.StatusOK)
	require.Contains(t, w.Body.String(), "Fix invoice rounding")

	// and on the personal listing
	w = b.get("/tickets/my", http.StatusOK)
	require.Contains(t, w.Body.String(), "Fix invoice rounding")

	transitionPath := fmt.Sprintf("%s/tickets/%d/transition", projectPath, tid)

	// a valid transition moves the ticket and leaves a success flash
	w = b.post(transitionPath+"?redirect="+url.QueryEscape(projectPath), url.Values{
		"transition": {"assign"},
	}, http.StatusSeeOther)
	require.Equal(t, projectPath, w.Header().Get("Location"))
	require.Equal(t, 2, ticketState(t, tid))

	w = b.get(projectPath, http.StatusOK)
	require.Contains(t, w.Body.String(), "Your ticket has been successfully assigned.")

	// the flash is gone on the next page load
	w = b.get(projectPath, http.StatusOK)
	require.NotContains(t, w.Body.String(), "Your ticket has been successfully assigned.")

	// an out-of-state transition fails loudly and changes nothing
	w = b.post(transitionPath, url.Values{"transition": {"close"}}, http.StatusSeeOther)
	require.Equal(t, "/tickets/my", w.Header().Get("Location"))
	require.Equal(t, 2, ticketState(t, tid))

	w = b.get("/tickets/my", http.StatusOK)
	require.Contains(t, w.Body.String(), "Error! Could not close ticket!")

	// withdrawing hides the ticket everywhere
	b.post(transitionPath, url.Values{"transition": {"withdraw"}}, http.StatusSeeOther)
	require.Equal(t, 0, ticketState(t, tid))

	w = b.get(projectPath, http.StatusOK)
	require.NotContains(t, w.Body.String(), "Fix invoice rounding")

	w = b.get("/tickets/my", http.StatusOK)
	require.NotContains(t, w.Body.String(), "Fix invoice rounding")

	// withdrawn tickets cannot be revived
	b.post(transitionPath, url.Values{"transition": {"reopen"}}, http.StatusSeeOther)
	require.Equal(t, 0, ticketState(t, tid))
}

func TestTransitionIsPostOnly(t *testing.T) {
	b := signUp(t, "bob", "correct-horse")

	b.post("/projects/new", url.Values{"title": {"Shipping"}}, http.StatusSeeOther)
	pid := projectID(t, "Shipping")

	b.post(fmt.Sprintf("/projects/%d/tickets/new", pid), url.Values{
		"title": {"Track parcels"},
	}, http.StatusSeeOther)
	tid := ticketID(t, "Track parcels")

	b.get(fmt.Sprintf("/projects/%d/tickets/%d/transition?transition=withdraw", pid, tid), http.StatusNotFound)
	require.Equal(t, 1, ticketState(t, tid))
}
