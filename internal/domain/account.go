package domain

// Role gates which operations an account may invoke. The non-admin role
// name differs per schema variant ("staff" or "support"); authorization
// only ever distinguishes admin from everything else.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleSupport Role = "support"
)

// Account models a staff member or administrator.
type Account struct {
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Role         Role
	Department   string
}

// IsAdmin reports whether the account holds the admin role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Sanitized returns a copy safe to hand to callers: the password digest is
// never part of any projection leaving the directory.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}
