package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
)

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{ID: "TICK-1", Title: "Printer jam", Description: "paper stuck", Category: "IT Support", Status: "Pending", Priority: "Low", RequesterName: "alice"},
		{ID: "TICK-2", Title: "AC broken", Description: "meeting room too warm", Category: "Facility Maintenance", Status: "In Progress", Priority: "High", RequesterName: "bob"},
		{ID: "TICK-3", Title: "Order chairs", Description: "two broke last week", Category: "Office Supplies", Status: "Pending", Priority: "Medium", RequesterName: "carol"},
	}
}

func TestFilterAllPassesEverythingThrough(t *testing.T) {
	tickets := sampleTickets()

	filtered := FilterTickets(tickets, domain.FilterAll, domain.FilterAll, "")
	assert.Equal(t, tickets, filtered)

	filtered = FilterTickets(tickets, "", "", "")
	assert.Equal(t, tickets, filtered)
}

func TestFilterByCategoryAndStatus(t *testing.T) {
	tickets := sampleTickets()

	filtered := FilterTickets(tickets, "IT Support", domain.FilterAll, "")
	require.Len(t, filtered, 1)
	assert.Equal(t, "TICK-1", filtered[0].ID)

	filtered = FilterTickets(tickets, domain.FilterAll, "Pending", "")
	require.Len(t, filtered, 2)
	assert.Equal(t, "TICK-1", filtered[0].ID)
	assert.Equal(t, "TICK-3", filtered[1].ID)

	filtered = FilterTickets(tickets, "Office Supplies", "In Progress", "")
	assert.Empty(t, filtered)
}

func TestSearchMatchesAnyTextField(t *testing.T) {
	tickets := sampleTickets()

	// Case-insensitive, matches title OR description OR requester name.
	byTitle := FilterTickets(tickets, "", "", "printer")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "TICK-1", byTitle[0].ID)

	byDescription := FilterTickets(tickets, "", "", "MEETING ROOM")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "TICK-2", byDescription[0].ID)

	byRequester := FilterTickets(tickets, "", "", "carol")
	require.Len(t, byRequester, 1)
	assert.Equal(t, "TICK-3", byRequester[0].ID)

	// "broke" hits the AC title and the chairs description.
	multi := FilterTickets(tickets, "", "", "broke")
	assert.Len(t, multi, 2)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tickets := sampleTickets()
	_ = FilterTickets(tickets, "IT Support", "Pending", "printer")
	assert.Equal(t, sampleTickets(), tickets)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleTickets())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["Pending"])
	assert.Equal(t, 1, stats.ByStatus["In Progress"])
	assert.Equal(t, 1, stats.ByCategory["IT Support"])
	assert.Equal(t, 1, stats.ByPriority["High"])
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByStatus)
}
