package domain

import (
	"strings"
	"time"
)

// Ticket is the aggregate for service requests. Category, priority, and
// status hold values from the active Schema's enumeration sets.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Priority       string
	Status         string
	RequesterName  string
	RequesterEmail string
	Department     string
	SubmitDate     time.Time
	UpdatedDate    time.Time
	UpdateNotes    string
	AssignedTo     string
}

// NoteLines splits the append-only update log into its entries, oldest
// first. An empty log yields no entries.
func (t Ticket) NoteLines() []string {
	if t.UpdateNotes == "" {
		return nil
	}
	return strings.Split(t.UpdateNotes, "\n")
}

// TicketStats is the aggregation returned by the reports operations.
type TicketStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByCategory map[string]int `json:"by_category"`
	ByPriority map[string]int `json:"by_priority"`
}
