package repository

import (
	"context"

	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// AccountRepository encapsulates account persistence. Uniqueness and the
// last-admin guard run inside the table's mutate cycle so the checks and
// the write happen against the same snapshot.
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	UpdatePassword(ctx context.Context, username, newHash string) error
	Delete(ctx context.Context, username string) error
}

type accountRepository struct {
	table *persistence.Table
}

// NewAccountRepository instantiates repository.
func NewAccountRepository(table *persistence.Table) AccountRepository {
	return &accountRepository{table: table}
}

// SeedRecord builds the row persisted when the accounts file is first
// created, so a fresh deployment always has one admin to log in with.
func SeedRecord(username, passwordHash string) persistence.Record {
	return accountToRecord(&domain.Account{
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     "Admin User",
		Email:        "admin@example.com",
		Role:         domain.RoleAdmin,
		Department:   "General Affairs",
	})
}

func (r *accountRepository) List(_ context.Context) ([]domain.Account, error) {
	rows, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(rows))
	for _, record := range rows {
		accounts = append(accounts, accountFromRecord(record))
	}
	return accounts, nil
}

func (r *accountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	rows, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for _, record := range rows {
		if record["username"] == username {
			account := accountFromRecord(record)
			return &account, nil
		}
	}
	return nil, util.NewNotFound("account", map[string]any{"username": username})
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	return r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		for _, record := range rows {
			if record["username"] == account.Username {
				return nil, util.NewDuplicateUsername(account.Username)
			}
		}
		return append(rows, accountToRecord(account)), nil
	})
}

func (r *accountRepository) UpdatePassword(_ context.Context, username, newHash string) error {
	return r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		for _, record := range rows {
			if record["username"] == username {
				record["password"] = newHash
				return rows, nil
			}
		}
		return nil, util.NewNotFound("account", map[string]any{"username": username})
	})
}

// Delete removes the account unless it is the last remaining admin.
func (r *accountRepository) Delete(_ context.Context, username string) error {
	return r.table.Mutate(func(rows []persistence.Record) ([]persistence.Record, error) {
		index := -1
		admins := 0
		for i, record := range rows {
			if record["role"] == string(domain.RoleAdmin) {
				admins++
			}
			if record["username"] == username {
				index = i
			}
		}
		if index < 0 {
			return nil, util.NewNotFound("account", map[string]any{"username": username})
		}
		if rows[index]["role"] == string(domain.RoleAdmin) && admins <= 1 {
			return nil, util.NewLastAdminProtected(username)
		}
		return append(rows[:index], rows[index+1:]...), nil
	})
}

func accountToRecord(account *domain.Account) persistence.Record {
	return persistence.Record{
		"username":   account.Username,
		"password":   account.PasswordHash,
		"full_name":  account.FullName,
		"email":      account.Email,
		"role":       string(account.Role),
		"department": account.Department,
	}
}

func accountFromRecord(record persistence.Record) domain.Account {
	return domain.Account{
		Username:     record["username"],
		PasswordHash: record["password"],
		FullName:     record["full_name"],
		Email:        record["email"],
		Role:         domain.Role(record["role"]),
		Department:   record["department"],
	}
}
