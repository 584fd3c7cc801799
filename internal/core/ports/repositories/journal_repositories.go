package repositories

import (
	"context"
	"time"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// JournalRepositoryFacade provides persistence for journals and their lines.
type JournalRepositoryFacade interface {
	// SaveJournal persists the journal and all its lines in one database
	// transaction; on failure nothing is inserted.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error)
	UpdateJournal(ctx context.Context, journal domain.Journal) error
	// DeleteJournal removes the journal and its lines in one transaction.
	DeleteJournal(ctx context.Context, journalID string) error
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedBy string, updatedAt time.Time) error

	FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error)
	UpdateJournalLine(ctx context.Context, line domain.JournalLine) error

	// ListLedgerLines returns journal lines joined with their parent journal,
	// ordered by journal date descending then line ID, for one account or all
	// accounts when accountID is empty. Balance is left zero; the ledger
	// service fills it in.
	ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
}
