package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ga-helpdesk/internal/auth"
	"github.com/spec-kit/ga-helpdesk/internal/config"
	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

func newAuthService(t *testing.T) (*AuthService, repository.ActivityRepository) {
	t.Helper()
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            bcrypt.MinCost,
	}
	hash, err := auth.HashPassword("admin123", cfg.BcryptCost)
	require.NoError(t, err)

	dir := t.TempDir()
	accountsTable := persistence.NewTable(filepath.Join(dir, "users.csv"), domain.AccountColumns(), zap.NewNop()).
		WithSeed(repository.SeedRecord("admin", hash))
	activityTable := persistence.NewTable(filepath.Join(dir, "activity_log.csv"), domain.ActivityColumns(), zap.NewNop())

	accounts := repository.NewAccountRepository(accountsTable)
	activity := repository.NewActivityRepository(activityTable)
	directory := NewAccountService(cfg, domain.GeneralAffairsSchema(), accounts)

	svc := NewAuthService(cfg, AuthDependencies{
		Directory:    directory,
		ActivityRepo: activity,
	})
	return svc, activity
}

func TestLoginIssuesTokenAndRecordsActivity(t *testing.T) {
	svc, activity := newAuthService(t)

	account, token, expiresAt, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	entries, err := activity.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityLogin, entries[0].Action)
	assert.Equal(t, "admin", entries[0].Username)
}

func TestLoginInvalidCredentialsLeavesNoTrace(t *testing.T) {
	svc, activity := newAuthService(t)

	_, _, _, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "INVALID_CREDENTIALS"))

	entries, err := activity.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoginSigningFailureLeavesNoTrace(t *testing.T) {
	svc, activity := newAuthService(t)
	svc.signToken = func(string, domain.Role) (string, time.Time, error) {
		return "", time.Time{}, errors.New("signing unavailable")
	}

	_, _, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.Error(t, err)

	entries, err := activity.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogoutRecordsActivity(t *testing.T) {
	svc, activity := newAuthService(t)

	require.NoError(t, svc.Logout(context.Background(), "admin"))

	entries, err := activity.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityLogout, entries[0].Action)
}

func TestRegisterCreatesStaffAccount(t *testing.T) {
	svc, _ := newAuthService(t)

	account, err := svc.Register(context.Background(), RegisterInput{
		Username:   "alice",
		Password:   "pw",
		FullName:   "Alice Smith",
		Email:      "alice@example.com",
		Department: "Sales",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, account.Role)

	// Registered accounts can log in immediately.
	logged, _, _, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", logged.FullName)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}
