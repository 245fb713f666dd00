package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

func newAccountRepo(t *testing.T, seed ...persistence.Record) AccountRepository {
	t.Helper()
	table := persistence.NewTable(filepath.Join(t.TempDir(), "users.csv"), domain.AccountColumns(), zap.NewNop())
	if len(seed) > 0 {
		table = table.WithSeed(seed...)
	}
	return NewAccountRepository(table)
}

func TestSeedRecordCreatesAdmin(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))

	account, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.Equal(t, "hash", account.PasswordHash)
	assert.True(t, account.IsAdmin())
}

func TestCreateAndGet(t *testing.T) {
	repo := newAccountRepo(t)

	err := repo.Create(context.Background(), &domain.Account{
		Username:     "alice",
		PasswordHash: "digest",
		FullName:     "Alice Smith",
		Email:        "alice@example.com",
		Role:         domain.RoleStaff,
		Department:   "Sales",
	})
	require.NoError(t, err)

	account, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", account.FullName)
	assert.Equal(t, domain.RoleStaff, account.Role)
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))

	err := repo.Create(context.Background(), &domain.Account{Username: "admin", Role: domain.RoleStaff})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "DUPLICATE_USERNAME"))

	// The failed create must not change the stored collection.
	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestGetUnknownUsername(t *testing.T) {
	repo := newAccountRepo(t)
	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestUpdatePassword(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "old"))

	require.NoError(t, repo.UpdatePassword(context.Background(), "admin", "new"))

	account, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "new", account.PasswordHash)
}

func TestDeleteLastAdminProtected(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))

	err := repo.Delete(context.Background(), "admin")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "LAST_ADMIN_PROTECTED"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestDeleteAdminWhenAnotherRemains(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))
	require.NoError(t, repo.Create(context.Background(), &domain.Account{Username: "admin2", Role: domain.RoleAdmin}))

	require.NoError(t, repo.Delete(context.Background(), "admin"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "admin2", accounts[0].Username)
}

func TestDeleteStaffAccount(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))
	require.NoError(t, repo.Create(context.Background(), &domain.Account{Username: "alice", Role: domain.RoleStaff}))

	require.NoError(t, repo.Delete(context.Background(), "alice"))

	_, err := repo.GetByUsername(context.Background(), "alice")
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestDeleteUnknownAccount(t *testing.T) {
	repo := newAccountRepo(t, SeedRecord("admin", "hash"))
	err := repo.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}
