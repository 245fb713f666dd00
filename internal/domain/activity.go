package domain

import "time"

// ActivityAction enumerates recordable account actions.
type ActivityAction string

const (
	ActivityLogin  ActivityAction = "login"
	ActivityLogout ActivityAction = "logout"
)

// ActivityEntry is one immutable row of the login/logout audit trail.
// Entries are only ever appended, never rewritten or deleted.
type ActivityEntry struct {
	Username  string
	Action    ActivityAction
	Timestamp time.Time
}
