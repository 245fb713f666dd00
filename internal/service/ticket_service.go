package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle: boundary validation,
// repository orchestration, and event publication.
type TicketService struct {
	tickets    repository.TicketRepository
	schema     domain.Schema
	dispatcher events.Dispatcher
	validate   *validator.Validate
}

// TicketSubmission describes a new service request. Every field is
// required; missing fields are caught here before the repository sees them.
type TicketSubmission struct {
	Title          string `validate:"required"`
	Description    string `validate:"required"`
	Category       string `validate:"required"`
	Priority       string `validate:"required"`
	RequesterName  string `validate:"required"`
	RequesterEmail string `validate:"required,email"`
	Department     string `validate:"required"`
}

// TicketQuery captures the dashboard filter parameters.
type TicketQuery struct {
	Category   string
	Status     string
	SearchTerm string
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, schema domain.Schema, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{
		tickets:    tickets,
		schema:     schema,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// Submit validates and persists a new ticket, returning it with the
// assigned identifier and timestamps.
func (s *TicketService) Submit(ctx context.Context, input TicketSubmission) (*domain.Ticket, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, util.NewValidationError("missing or invalid submission fields", validationDetails(err))
	}
	if !s.schema.ValidCategory(input.Category) {
		return nil, util.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if !s.schema.ValidPriority(input.Priority) {
		return nil, util.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}

	ticket := &domain.Ticket{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Category:       input.Category,
		Priority:       input.Priority,
		RequesterName:  input.RequesterName,
		RequesterEmail: input.RequesterEmail,
		Department:     input.Department,
	}
	if _, err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    ticket.RequesterName,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches one ticket by identifier.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// ListTickets returns tickets narrowed by the query filters.
func (s *TicketService) ListTickets(ctx context.Context, query TicketQuery) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	return repository.FilterTickets(tickets, query.Category, query.Status, query.SearchTerm), nil
}

// UpdateStatus transitions a ticket and appends one line to its update
// log. The assignee is optional.
func (s *TicketService) UpdateStatus(ctx context.Context, actor, id, newStatus, notes, assignee string) (*domain.Ticket, error) {
	if !s.schema.ValidStatus(newStatus) {
		return nil, util.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.tickets.UpdateStatus(ctx, id, newStatus, notes, assignee)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: id,
		Actor:    actor,
		Payload: events.TicketStatusChangedPayload{
			OldStatus:  current.Status,
			NewStatus:  newStatus,
			AssignedTo: assignee,
			Notes:      notes,
		},
	})
	return updated, nil
}

// DeleteTicket removes a ticket permanently.
func (s *TicketService) DeleteTicket(ctx context.Context, actor, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Actor:    actor,
	})
	return nil
}

// Categories exposes the active variant's category set for submission forms.
func (s *TicketService) Categories() []string {
	return append([]string{}, s.schema.Categories...)
}

// Statuses exposes the active variant's status set.
func (s *TicketService) Statuses() []string {
	return append([]string{}, s.schema.Statuses...)
}

// Priorities exposes the active variant's priority set.
func (s *TicketService) Priorities() []string {
	return append([]string{}, s.schema.Priorities...)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validationDetails(err error) map[string]any {
	details := map[string]any{}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldErr := range fieldErrors {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return details
}
