package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
)

const statsCacheKey = "reports:ticket_stats"

// ReportService aggregates ticket counts for dashboards. The repository is
// the source of truth; the redis-cached projection is dropped after every
// mutating ticket event rather than trusted until expiry.
type ReportService struct {
	tickets repository.TicketRepository
	cache   *persistence.Redis
	ttl     time.Duration
	logger  *zap.Logger
}

// NewReportService builds the service.
func NewReportService(tickets repository.TicketRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{tickets: tickets, cache: cache, ttl: ttl, logger: logger}
}

// TicketStats returns total and per-status/category/priority counts.
func (s *ReportService) TicketStats(ctx context.Context) (domain.TicketStats, error) {
	if cached := s.cache.Get(ctx, statsCacheKey); cached != "" {
		var stats domain.TicketStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
		s.cache.Delete(ctx, statsCacheKey)
	}

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.TicketStats{}, err
	}
	stats := repository.ComputeStats(tickets)

	if payload, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, statsCacheKey, string(payload), s.ttl)
	}
	return stats, nil
}

// FilteredStats aggregates over a filtered subset, bypassing the cache.
func (s *ReportService) FilteredStats(ctx context.Context, query TicketQuery) (domain.TicketStats, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.TicketStats{}, err
	}
	filtered := repository.FilterTickets(tickets, query.Category, query.Status, query.SearchTerm)
	return repository.ComputeStats(filtered), nil
}

// RegisterInvalidation subscribes the cache drop to every event that
// mutates the ticket collection.
func (s *ReportService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketDeleted,
	} {
		dispatcher.Subscribe(eventType, s.invalidate)
	}
}

func (s *ReportService) invalidate(ctx context.Context, event events.Event) error {
	s.cache.Delete(ctx, statsCacheKey)
	s.logger.Debug("report cache invalidated", zap.String("event_type", string(event.Type)))
	return nil
}
