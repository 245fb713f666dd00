package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

type capturedEvents struct {
	seen []events.Event
}

func (c *capturedEvents) capture(_ context.Context, event events.Event) error {
	c.seen = append(c.seen, event)
	return nil
}

func newTicketService(t *testing.T) (*TicketService, *capturedEvents) {
	t.Helper()
	schema := domain.GeneralAffairsSchema()
	table := persistence.NewTable(filepath.Join(t.TempDir(), "tickets.csv"), schema.Ticket.Names(), zap.NewNop())
	tickets := repository.NewTicketRepository(table, schema)

	dispatcher := events.NewInMemoryDispatcher()
	captured := &capturedEvents{}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketDeleted,
	} {
		dispatcher.Subscribe(eventType, captured.capture)
	}

	return NewTicketService(tickets, schema, dispatcher), captured
}

func validSubmission() TicketSubmission {
	return TicketSubmission{
		Title:          "  Projector flickers  ",
		Description:    "Screen blanks out every few minutes.",
		Category:       "IT Support",
		Priority:       "High",
		RequesterName:  "alice",
		RequesterEmail: "alice@example.com",
		Department:     "Marketing",
	}
}

func TestSubmitPersistsAndPublishes(t *testing.T) {
	svc, captured := newTicketService(t)

	ticket, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, "Projector flickers", ticket.Title)
	assert.Equal(t, "Pending", ticket.Status)

	require.Len(t, captured.seen, 1)
	assert.Equal(t, events.EventTicketCreated, captured.seen[0].Type)
	assert.Equal(t, ticket.ID, captured.seen[0].TicketID)
	assert.NotEmpty(t, captured.seen[0].ID)
	assert.False(t, captured.seen[0].Timestamp.IsZero())

	stored, err := svc.GetTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.Title, stored.Title)
}

func TestSubmitMissingFields(t *testing.T) {
	svc, captured := newTicketService(t)

	input := validSubmission()
	input.Title = ""
	input.RequesterEmail = "not-an-email"

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
	assert.Empty(t, captured.seen)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "Title")
	assert.Contains(t, domainErr.Details, "RequesterEmail")
}

func TestSubmitUnknownCategory(t *testing.T) {
	svc, _ := newTicketService(t)

	input := validSubmission()
	input.Category = "Astrology"

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestSubmitUnknownPriority(t *testing.T) {
	svc, _ := newTicketService(t)

	input := validSubmission()
	input.Priority = "Critical" // helpdesk-variant value, invalid here

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestUpdateStatusPublishesTransition(t *testing.T) {
	svc, captured := newTicketService(t)
	ticket, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "admin", ticket.ID, "In Progress", "looking into it", "bob")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, "bob", updated.AssignedTo)
	require.Len(t, updated.NoteLines(), 1)

	require.Len(t, captured.seen, 2)
	event := captured.seen[1]
	assert.Equal(t, events.EventTicketStatusChanged, event.Type)
	assert.Equal(t, "admin", event.Actor)
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "Pending", payload.OldStatus)
	assert.Equal(t, "In Progress", payload.NewStatus)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, _ := newTicketService(t)
	ticket, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "admin", ticket.ID, "Closed", "", "")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	svc, captured := newTicketService(t)

	_, err := svc.UpdateStatus(context.Background(), "admin", "TICK-NOPE", "Completed", "", "")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, captured.seen)
}

func TestDeleteTicketPublishes(t *testing.T) {
	svc, captured := newTicketService(t)
	ticket, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(context.Background(), "admin", ticket.ID))

	_, err = svc.GetTicket(context.Background(), ticket.ID)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))

	require.Len(t, captured.seen, 2)
	assert.Equal(t, events.EventTicketDeleted, captured.seen[1].Type)
}

func TestListTicketsAppliesFilters(t *testing.T) {
	svc, _ := newTicketService(t)

	first, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	other := validSubmission()
	other.Title = "Replace broken chair"
	other.Category = "Office Supplies"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	all, err := svc.ListTickets(context.Background(), TicketQuery{Category: domain.FilterAll, Status: domain.FilterAll})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	itOnly, err := svc.ListTickets(context.Background(), TicketQuery{Category: "IT Support"})
	require.NoError(t, err)
	require.Len(t, itOnly, 1)
	assert.Equal(t, first.ID, itOnly[0].ID)

	search, err := svc.ListTickets(context.Background(), TicketQuery{SearchTerm: "chair"})
	require.NoError(t, err)
	assert.Len(t, search, 1)
}

func TestMetadataReturnsCopies(t *testing.T) {
	svc, _ := newTicketService(t)

	categories := svc.Categories()
	require.NotEmpty(t, categories)
	categories[0] = "mutated"
	assert.NotEqual(t, "mutated", svc.Categories()[0])

	assert.Equal(t, []string{"Pending", "In Progress", "Completed", "Rejected"}, svc.Statuses())
	assert.Equal(t, []string{"Low", "Medium", "High", "Urgent"}, svc.Priorities())
}
