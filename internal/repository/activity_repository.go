package repository

import (
	"context"
	"time"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
)

// ActivityRepository persists the login/logout audit trail as an
// append-only log: entries are never rewritten or deleted.
type ActivityRepository interface {
	Append(ctx context.Context, username string, action domain.ActivityAction) error
	History(ctx context.Context) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	table *persistence.Table
	now   func() time.Time
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(table *persistence.Table) ActivityRepository {
	return &activityRepository{table: table, now: time.Now}
}

func (r *activityRepository) Append(_ context.Context, username string, action domain.ActivityAction) error {
	return r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		return append(rows, persistence.Record{
			"username":  username,
			"action":    string(action),
			"timestamp": r.now().Format(domain.TimeLayout),
		}), nil
	})
}

// History returns all entries in file order, which is insertion order.
func (r *activityRepository) History(_ context.Context) ([]domain.ActivityEntry, error) {
	rows, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ActivityEntry, 0, len(rows))
	for _, record := range rows {
		entries = append(entries, domain.ActivityEntry{
			Username:  record["username"],
			Action:    domain.ActivityAction(record["action"]),
			Timestamp: parseTime(record["timestamp"]),
		})
	}
	return entries, nil
}
