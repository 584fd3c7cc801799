package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	"github.com/shulebooks/sba_backend/internal/dto"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal inserts the journal and all its lines within one database
// transaction. On any failure the transaction rolls back and nothing persists.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	journalQuery := `
		INSERT INTO journals (
			journal_id, journal_date, description, posted_by, academic_year_id, term_id, status,
			original_journal_id, reversing_journal_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Description,
		journal.PostedBy,
		journal.AcademicYearID,
		journal.TermID,
		journal.Status,
		journal.OriginalJournalID,
		journal.ReversingJournalID,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Notes,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for journal %s: %w", journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

const journalColumns = `journal_id, journal_date, description, posted_by, academic_year_id, term_id, status, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (domain.Journal, error) {
	var j domain.Journal
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&j.JournalID,
		&j.JournalDate,
		&j.Description,
		&j.PostedBy,
		&j.AcademicYearID,
		&j.TermID,
		&j.Status,
		&originalID,
		&reversingID,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if originalID.Valid {
		j.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		j.ReversingJournalID = &reversingID.String
	}
	return j, err
}

// FindJournalByID retrieves a journal by its ID, without lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	j, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return &j, nil
}

const lineColumns = `line_id, journal_id, account_id, debit, credit, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalLine(row pgx.Row) (domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.JournalID,
		&l.AccountID,
		&l.Debit,
		&l.Credit,
		&l.Notes,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

const findLinesByJournalIDQuery = `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY created_at, line_id;`

// FindLinesByJournalID retrieves the lines of one journal in insertion order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, findLinesByJournalIDQuery, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		line, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}

// ListJournals retrieves journals matching the filters, newest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE ($1 = '' OR academic_year_id = $1)
		  AND ($2 = '' OR term_id = $2)
		ORDER BY journal_date DESC, journal_id;
	`
	rows, err := r.Pool.Query(ctx, query, params.AcademicYearID, params.TermID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

const updateJournalQuery = `
	UPDATE journals
	SET journal_date = $2, description = $3, posted_by = $4, academic_year_id = $5, term_id = $6, last_updated_at = $7, last_updated_by = $8
	WHERE journal_id = $1;
`

// UpdateJournal updates the journal's entry-level fields. Lines are immutable
// through this path.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	tag, err := r.Pool.Exec(ctx, updateJournalQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Description,
		journal.PostedBy,
		journal.AcademicYearID,
		journal.TermID,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJournal removes the journal and its lines in one transaction.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to delete lines for journal %s: %w", journalID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// UpdateJournalStatusAndLinks sets the journal's status and reversal link.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, reversing_journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, status, reversingJournalID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLineByID retrieves one journal line.
func (r *PgxJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE line_id = $1;`
	line, err := scanJournalLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal line by ID %s: %w", lineID, err)
	}
	return &line, nil
}

// UpdateJournalLine updates one line's account, amounts and notes.
func (r *PgxJournalRepository) UpdateJournalLine(ctx context.Context, line domain.JournalLine) error {
	query := `
		UPDATE journal_lines
		SET account_id = $2, debit = $3, credit = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE line_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		line.LineID,
		line.AccountID,
		line.Debit,
		line.Credit,
		line.Notes,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal line %s: %w", line.LineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListLedgerLines joins journal lines with their parent journal and account,
// newest journal first. Balance is left zero for the ledger service to fill.
func (r *PgxJournalRepository) ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT l.line_id, l.journal_id, j.journal_date, j.description, l.account_id, a.code, l.debit, l.credit
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE ($1 = '' OR l.account_id = $1)
		ORDER BY j.journal_date DESC, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger lines: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.LineID,
			&e.JournalID,
			&e.JournalDate,
			&e.Description,
			&e.AccountID,
			&e.AccountCode,
			&e.Debit,
			&e.Credit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}
