package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ga-helpdesk/internal/auth"
	"github.com/spec-kit/ga-helpdesk/internal/config"
	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// AuthService coordinates login, logout, and self-registration flows. Every
// successful login and logout appends one entry to the activity log.
type AuthService struct {
	directory  *AccountService
	activity   repository.ActivityRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	signToken  func(username string, role domain.Role) (string, time.Time, error)
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Directory    *AccountService
	ActivityRepo repository.ActivityRepository
	Dispatcher   events.Dispatcher
}

// RegisterInput describes a self-registration payload. The role is always
// the schema variant's non-admin role; admins are created by other admins.
type RegisterInput struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	Department string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokenMgr := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	return &AuthService{
		directory:  deps.Directory,
		activity:   deps.ActivityRepo,
		tokenMgr:   tokenMgr,
		dispatcher: deps.Dispatcher,
		signToken:  tokenMgr.GenerateToken,
	}
}

// Login authenticates an account, records the login, and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.directory.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	// Token first: a failed signing must leave no login audit row.
	token, exp, err := s.signToken(account.Username, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.activity.Append(ctx, account.Username, domain.ActivityLogin); err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventAccountLoggedIn, account.Username)
	return account, token, exp, nil
}

// Logout records the logout in the activity trail. Tokens are stateless;
// there is nothing to revoke server-side.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	if err := s.activity.Append(ctx, username, domain.ActivityLogout); err != nil {
		return err
	}
	s.publish(ctx, events.EventAccountLoggedOut, username)
	return nil
}

// Register creates a non-admin account via self-registration.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if input.Username == "" || input.Password == "" || input.FullName == "" || input.Department == "" {
		return nil, util.NewValidationError("all fields are required", nil)
	}
	return s.directory.AddAccount(ctx, AddAccountInput{
		Username:   input.Username,
		Password:   input.Password,
		FullName:   input.FullName,
		Email:      input.Email,
		Department: input.Department,
	})
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, username string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     username,
		Timestamp: time.Now(),
		Payload:   events.AccountActivityPayload{Username: username},
	})
}
