package dto

import (
	"time"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest payload for staff self-registration.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// AddAccountRequest payload for admin-created accounts.
type AddAccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the password-free projection of an account.
type AccountResponse struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// ActivityEntryResponse is one row of the audit trail.
type ActivityEntryResponse struct {
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// FromAccount maps an account to its wire form.
func FromAccount(account domain.Account) AccountResponse {
	return AccountResponse{
		Username:   account.Username,
		FullName:   account.FullName,
		Email:      account.Email,
		Role:       string(account.Role),
		Department: account.Department,
	}
}

// FromActivityEntry maps an audit entry to its wire form.
func FromActivityEntry(entry domain.ActivityEntry) ActivityEntryResponse {
	return ActivityEntryResponse{
		Username:  entry.Username,
		Action:    string(entry.Action),
		Timestamp: entry.Timestamp.Format(domain.TimeLayout),
	}
}
