package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// idAttempts bounds the regenerate-on-collision loop for new ticket ids.
const idAttempts = 5

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, newStatus, notes, assignee string) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	table  *persistence.Table
	schema domain.Schema
	now    func() time.Time
	genID  func() string
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(table *persistence.Table, schema domain.Schema) TicketRepository {
	return &ticketRepository{table: table, schema: schema, now: time.Now, genID: GenerateTicketID}
}

// GenerateTicketID produces a TICK-XXXXXXXX identifier: the first 8 hex
// characters of a random UUID, uppercased. 32 bits of entropy, so callers
// inserting new tickets re-check against existing records.
func GenerateTicketID() string {
	return "TICK-" + strings.ToUpper(uuid.NewString()[:8])
}

func (r *ticketRepository) Create(_ context.Context, ticket *domain.Ticket) (string, error) {
	err := r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		if ticket.ID == "" {
			ticket.ID = r.genID()
			for i := 0; i < idAttempts && idExists(rows, r.schema.Ticket.ID, ticket.ID); i++ {
				ticket.ID = r.genID()
			}
		}
		if idExists(rows, r.schema.Ticket.ID, ticket.ID) {
			return nil, util.NewDomainError("CONFLICT", "ticket id already exists", 409,
				map[string]any{"ticket_id": ticket.ID})
		}

		now := r.now()
		ticket.SubmitDate = now
		ticket.UpdatedDate = now
		if ticket.Status == "" {
			ticket.Status = r.schema.InitialStatus
		}
		if ticket.Priority == "" {
			ticket.Priority = r.schema.DefaultPriority
		}
		return append(rows, r.toRecord(ticket)), nil
	})
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

func (r *ticketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	rows, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for _, record := range rows {
		if record[r.schema.Ticket.ID] == id {
			ticket := r.fromRecord(record)
			return &ticket, nil
		}
	}
	return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": id})
}

func (r *ticketRepository) UpdateStatus(_ context.Context, id, newStatus, notes, assignee string) (*domain.Ticket, error) {
	var updated domain.Ticket
	err := r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		cols := r.schema.Ticket
		for _, record := range rows {
			if record[cols.ID] != id {
				continue
			}

			now := r.now()
			record[cols.Status] = newStatus
			record[cols.UpdatedDate] = now.Format(domain.TimeLayout)

			summary := "Status changed to " + newStatus
			if assignee != "" {
				record[cols.AssignedTo] = assignee
				summary += " and assigned to " + assignee
			}
			line := now.Format(domain.TimeLayout) + " - " + summary
			if notes != "" {
				line += ": " + notes
			}
			// Strictly append-only: prior entries are never rewritten.
			if existing := record[cols.UpdateNotes]; existing == "" {
				record[cols.UpdateNotes] = line
			} else {
				record[cols.UpdateNotes] = existing + "\n" + line
			}

			updated = r.fromRecord(record)
			return rows, nil
		}
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": id})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ticketRepository) Delete(_ context.Context, id string) error {
	return r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		for i, record := range rows {
			if record[r.schema.Ticket.ID] == id {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": id})
	})
}

func (r *ticketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	rows, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(rows))
	for _, record := range rows {
		tickets = append(tickets, r.fromRecord(record))
	}
	return tickets, nil
}

func (r *ticketRepository) toRecord(ticket *domain.Ticket) persistence.Record {
	cols := r.schema.Ticket
	return persistence.Record{
		cols.ID:             ticket.ID,
		cols.Title:          ticket.Title,
		cols.Description:    ticket.Description,
		cols.Category:       ticket.Category,
		cols.Priority:       ticket.Priority,
		cols.Status:         ticket.Status,
		cols.RequesterName:  ticket.RequesterName,
		cols.RequesterEmail: ticket.RequesterEmail,
		cols.Department:     ticket.Department,
		cols.SubmitDate:     ticket.SubmitDate.Format(domain.TimeLayout),
		cols.UpdatedDate:    ticket.UpdatedDate.Format(domain.TimeLayout),
		cols.UpdateNotes:    ticket.UpdateNotes,
		cols.AssignedTo:     ticket.AssignedTo,
	}
}

func (r *ticketRepository) fromRecord(record persistence.Record) domain.Ticket {
	cols := r.schema.Ticket
	return domain.Ticket{
		ID:             record[cols.ID],
		Title:          record[cols.Title],
		Description:    record[cols.Description],
		Category:       record[cols.Category],
		Priority:       record[cols.Priority],
		Status:         record[cols.Status],
		RequesterName:  record[cols.RequesterName],
		RequesterEmail: record[cols.RequesterEmail],
		Department:     record[cols.Department],
		SubmitDate:     parseTime(record[cols.SubmitDate]),
		UpdatedDate:    parseTime(record[cols.UpdatedDate]),
		UpdateNotes:    record[cols.UpdateNotes],
		AssignedTo:     record[cols.AssignedTo],
	}
}

func idExists(rows []persistence.Record, idColumn, id string) bool {
	for _, record := range rows {
		if record[idColumn] == id {
			return true
		}
	}
	return false
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.ParseInLocation(domain.TimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
