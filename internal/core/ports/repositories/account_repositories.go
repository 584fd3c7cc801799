package repositories

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// AccountRepositoryFacade provides persistence for the chart of accounts.
type AccountRepositoryFacade interface {
	// SaveAccount returns apperrors.ErrDuplicate when the account code exists.
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts found keyed by ID; missing IDs are
	// simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, accountType string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, accountID string) error
	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}
