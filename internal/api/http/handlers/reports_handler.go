package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ga-helpdesk/internal/service"
)

// ReportsHandler exposes ticket volume summaries.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Stats GET /reports/stats. Filter query params bypass the cached
// whole-collection summary.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	query := service.TicketQuery{
		Category:   c.Query("category"),
		Status:     c.Query("status"),
		SearchTerm: c.Query("search"),
	}
	if query.Category == "" && query.Status == "" && query.SearchTerm == "" {
		stats, err := h.reports.TicketStats(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": stats})
	}

	stats, err := h.reports.FilteredStats(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
