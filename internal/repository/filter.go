package repository

import (
	"strings"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
)

// FilterTickets narrows tickets by category, status, and a free-text search
// term. Pure: the input slice is never mutated and order is preserved.
// Passing domain.FilterAll (or "") for category/status and "" for the
// search term returns the collection unchanged.
func FilterTickets(tickets []domain.Ticket, category, status, searchTerm string) []domain.Ticket {
	filtered := make([]domain.Ticket, 0, len(tickets))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	for _, ticket := range tickets {
		if category != "" && category != domain.FilterAll && ticket.Category != category {
			continue
		}
		if status != "" && status != domain.FilterAll && ticket.Status != status {
			continue
		}
		if term != "" && !matchesTerm(ticket, term) {
			continue
		}
		filtered = append(filtered, ticket)
	}
	return filtered
}

// matchesTerm does a case-insensitive substring match across title,
// description, and requester name.
func matchesTerm(ticket domain.Ticket, term string) bool {
	return strings.Contains(strings.ToLower(ticket.Title), term) ||
		strings.Contains(strings.ToLower(ticket.Description), term) ||
		strings.Contains(strings.ToLower(ticket.RequesterName), term)
}

// ComputeStats aggregates ticket counts by status, category, and priority.
// Pure aggregation, no mutation.
func ComputeStats(tickets []domain.Ticket) domain.TicketStats {
	stats := domain.TicketStats{
		Total:      len(tickets),
		ByStatus:   make(map[string]int),
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, ticket := range tickets {
		stats.ByStatus[ticket.Status]++
		stats.ByCategory[ticket.Category]++
		stats.ByPriority[ticket.Priority]++
	}
	return stats
}
