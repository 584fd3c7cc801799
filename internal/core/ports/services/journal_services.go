package services

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// JournalSvcFacade composes journal entries and their lines.
type JournalSvcFacade interface {
	// CreateJournal validates the submission (balance, line shape, account
	// existence) and persists the entry with its lines atomically.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error)
	// UpdateJournal updates entry-level fields only; lines are a separate resource.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, journalID string) error
	// UpdateJournalLine mutates a single line. It does not re-validate the
	// parent entry's balance; line edits are an administrative correction path.
	UpdateJournalLine(ctx context.Context, lineID string, req dto.UpdateJournalLineRequest, userID string) (*domain.JournalLine, error)
	// ReverseJournal creates a mirrored entry and marks the original REVERSED.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)
}

// LedgerSvcFacade computes the per-account ledger projection.
type LedgerSvcFacade interface {
	// GetLedger returns journal lines ordered newest-first with running
	// balances, for one account or all accounts. Read-only and idempotent.
	GetLedger(ctx context.Context, params dto.ListLedgerParams) ([]domain.LedgerEntry, error)
}
