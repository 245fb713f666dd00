package dto

import "github.com/spec-kit/ga-helpdesk/internal/domain"

// SubmitTicketRequest payload for new service requests.
type SubmitTicketRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	Department     string `json:"department"`
}

// UpdateStatusRequest payload for the admin status transition.
type UpdateStatusRequest struct {
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	AssignedTo string `json:"assigned_to"`
}

// TicketResponse is the wire form of one ticket.
type TicketResponse struct {
	TicketID       string   `json:"ticket_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	Status         string   `json:"status"`
	RequesterName  string   `json:"requester_name"`
	RequesterEmail string   `json:"requester_email"`
	Department     string   `json:"department"`
	SubmitDate     string   `json:"submit_date"`
	UpdatedDate    string   `json:"updated_date"`
	UpdateNotes    []string `json:"update_notes"`
	AssignedTo     string   `json:"assigned_to,omitempty"`
}

// TicketMetadataResponse exposes the active schema's enumeration sets so
// forms do not hardcode them.
type TicketMetadataResponse struct {
	Categories []string `json:"categories"`
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
}

// FromTicket maps the domain aggregate to its wire form.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:       ticket.ID,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Category:       ticket.Category,
		Priority:       ticket.Priority,
		Status:         ticket.Status,
		RequesterName:  ticket.RequesterName,
		RequesterEmail: ticket.RequesterEmail,
		Department:     ticket.Department,
		SubmitDate:     ticket.SubmitDate.Format(domain.TimeLayout),
		UpdatedDate:    ticket.UpdatedDate.Format(domain.TimeLayout),
		UpdateNotes:    ticket.NoteLines(),
		AssignedTo:     ticket.AssignedTo,
	}
}
