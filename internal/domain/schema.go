package domain

// TimeLayout is the on-disk timestamp encoding shared by every table.
const TimeLayout = "2006-01-02 15:04:05"

// FilterAll disables a category or status filter when passed to Filter.
const FilterAll = "All"

// TicketColumns maps ticket fields to CSV header names. Two dialects exist
// in the wild (submit_date/updated_date vs created_at/updated_at, title vs
// subject, requester_name vs name); keeping the mapping in data lets the
// store read either without the repositories caring.
type TicketColumns struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Priority       string
	Status         string
	RequesterName  string
	RequesterEmail string
	Department     string
	SubmitDate     string
	UpdatedDate    string
	UpdateNotes    string
	AssignedTo     string
}

// Names returns the header row in canonical column order.
func (c TicketColumns) Names() []string {
	return []string{
		c.ID, c.Title, c.Description, c.Category, c.Priority, c.Status,
		c.RequesterName, c.RequesterEmail, c.Department,
		c.SubmitDate, c.UpdatedDate, c.UpdateNotes, c.AssignedTo,
	}
}

// Schema bundles the column dialect and the enumeration sets a deployment
// runs with. Callers select a variant at initialization; nothing below the
// config layer hardcodes category, priority, or status values.
type Schema struct {
	Name            string
	Ticket          TicketColumns
	Categories      []string
	Priorities      []string
	Statuses        []string
	InitialStatus   string
	DefaultPriority string
	StaffRole       Role
}

// GeneralAffairsSchema is the default variant: the general-affairs service
// desk with submit_date/updated_date columns and Pending-initial tickets.
func GeneralAffairsSchema() Schema {
	return Schema{
		Name: "general-affairs",
		Ticket: TicketColumns{
			ID:             "ticket_id",
			Title:          "title",
			Description:    "description",
			Category:       "category",
			Priority:       "priority",
			Status:         "status",
			RequesterName:  "requester_name",
			RequesterEmail: "requester_email",
			Department:     "department",
			SubmitDate:     "submit_date",
			UpdatedDate:    "updated_date",
			UpdateNotes:    "update_notes",
			AssignedTo:     "assigned_to",
		},
		Categories: []string{
			"Facility Maintenance",
			"IT Support",
			"Office Supplies",
			"Meeting Room Booking",
			"Security",
			"Cleaning Services",
			"Transportation",
			"Catering",
			"Other",
		},
		Priorities:      []string{"Low", "Medium", "High", "Urgent"},
		Statuses:        []string{"Pending", "In Progress", "Completed", "Rejected"},
		InitialStatus:   "Pending",
		DefaultPriority: "Medium",
		StaffRole:       RoleStaff,
	}
}

// HelpdeskSchema is the alternate variant observed in the helpdesk
// deployment: created_at/updated_at column names and Open-initial tickets.
func HelpdeskSchema() Schema {
	return Schema{
		Name: "helpdesk",
		Ticket: TicketColumns{
			ID:             "ticket_id",
			Title:          "subject",
			Description:    "description",
			Category:       "category",
			Priority:       "priority",
			Status:         "status",
			RequesterName:  "name",
			RequesterEmail: "requester_email",
			Department:     "department",
			SubmitDate:     "created_at",
			UpdatedDate:    "updated_at",
			UpdateNotes:    "update_notes",
			AssignedTo:     "assigned_to",
		},
		Categories: []string{
			"General Inquiry",
			"Technical Support",
			"Billing Issue",
			"Feature Request",
			"Bug Report",
			"Other",
		},
		Priorities:      []string{"Low", "Medium", "High", "Critical"},
		Statuses:        []string{"Open", "In Progress", "Resolved", "Closed"},
		InitialStatus:   "Open",
		DefaultPriority: "Medium",
		StaffRole:       RoleSupport,
	}
}

// SchemaByName resolves a configured variant name, defaulting to the
// general-affairs schema when the name is empty.
func SchemaByName(name string) (Schema, bool) {
	switch name {
	case "", "general-affairs":
		return GeneralAffairsSchema(), true
	case "helpdesk":
		return HelpdeskSchema(), true
	default:
		return Schema{}, false
	}
}

// ValidCategory reports whether v belongs to the variant's category set.
func (s Schema) ValidCategory(v string) bool { return contains(s.Categories, v) }

// ValidPriority reports whether v belongs to the variant's priority set.
func (s Schema) ValidPriority(v string) bool { return contains(s.Priorities, v) }

// ValidStatus reports whether v belongs to the variant's status set.
func (s Schema) ValidStatus(v string) bool { return contains(s.Statuses, v) }

func contains(set []string, v string) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}

// AccountColumns is the header of the accounts table.
func AccountColumns() []string {
	return []string{"username", "password", "full_name", "email", "role", "department"}
}

// ActivityColumns is the header of the activity log table.
func ActivityColumns() []string {
	return []string{"username", "action", "timestamp"}
}
