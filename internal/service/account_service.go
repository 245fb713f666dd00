package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/ga-helpdesk/internal/auth"
	"github.com/spec-kit/ga-helpdesk/internal/config"
	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// AccountService is the account directory: credential verification and
// account administration over the flat-file store.
type AccountService struct {
	accounts   repository.AccountRepository
	schema     domain.Schema
	bcryptCost int
	validate   *validator.Validate
}

// AddAccountInput describes a new account. An empty Role defaults to the
// schema variant's non-admin role.
type AddAccountInput struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	Role       domain.Role
	Department string
}

// NewAccountService builds the directory.
func NewAccountService(cfg config.AuthConfig, schema domain.Schema, accounts repository.AccountRepository) *AccountService {
	return &AccountService{
		accounts:   accounts,
		schema:     schema,
		bcryptCost: cfg.BcryptCost,
		validate:   validator.New(),
	}
}

// Authenticate verifies the submitted password against the stored digest.
// Both an unknown username and a wrong password come back as
// InvalidCredentials; the returned account never carries the digest.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if util.IsCode(err, "NOT_FOUND") {
			return nil, util.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, util.NewInvalidCredentials()
	}
	sanitized := account.Sanitized()
	return &sanitized, nil
}

// AddAccount validates, hashes the password, and persists a new account.
func (s *AccountService) AddAccount(ctx context.Context, input AddAccountInput) (*domain.Account, error) {
	if input.Username == "" || input.Password == "" {
		return nil, util.NewValidationError("username and password required", nil)
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, util.NewInvalidEmail(input.Email)
	}

	role := input.Role
	if role == "" {
		role = s.schema.StaffRole
	}
	if role != domain.RoleAdmin && role != s.schema.StaffRole {
		return nil, util.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         role,
		Department:   input.Department,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	sanitized := account.Sanitized()
	return &sanitized, nil
}

// DeleteAccount removes an account. The repository refuses to remove the
// last remaining admin.
func (s *AccountService) DeleteAccount(ctx context.Context, username string) error {
	return s.accounts.Delete(ctx, username)
}

// ChangePassword verifies the old password before storing a new digest.
func (s *AccountService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, oldPassword); err != nil {
		return util.NewInvalidCredentials()
	}
	if newPassword == "" {
		return util.NewValidationError("new password required", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, username, hash)
}

// ListAccounts returns every account without password digests.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		sanitized = append(sanitized, account.Sanitized())
	}
	return sanitized, nil
}

// ListAdmins returns the admin accounts, for assignment pickers.
func (s *AccountService) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	admins := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.IsAdmin() {
			admins = append(admins, account.Sanitized())
		}
	}
	return admins, nil
}
