package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
)

type PgxAcademicRepository struct {
	BaseRepository
}

// newPgxAcademicRepository creates a new repository for academic year and term data.
func newPgxAcademicRepository(pool *pgxpool.Pool) portsrepo.AcademicRepositoryFacade {
	return &PgxAcademicRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AcademicRepositoryFacade = (*PgxAcademicRepository)(nil)

// InsertAcademicYear inserts a new academic year. A unique violation on the
// slug comes back as apperrors.ErrDuplicate so the service can retry with a
// suffixed candidate.
func (r *PgxAcademicRepository) InsertAcademicYear(ctx context.Context, year domain.AcademicYear) error {
	query := `
		INSERT INTO academic_years (academic_year_id, name, slug, start_date, end_date, is_current, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		year.AcademicYearID,
		year.Name,
		year.Slug,
		year.StartDate,
		year.EndDate,
		year.IsCurrent,
		year.CreatedAt,
		year.CreatedBy,
		year.LastUpdatedAt,
		year.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: academic year slug %s", apperrors.ErrDuplicate, year.Slug)
		}
		return fmt.Errorf("failed to insert academic year %s: %w", year.AcademicYearID, err)
	}
	return nil
}

// FindAcademicYearByID retrieves an academic year by its ID.
func (r *PgxAcademicRepository) FindAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error) {
	query := `
		SELECT academic_year_id, name, slug, start_date, end_date, is_current, created_at, created_by, last_updated_at, last_updated_by
		FROM academic_years
		WHERE academic_year_id = $1;
	`
	var year domain.AcademicYear
	err := r.Pool.QueryRow(ctx, query, yearID).Scan(
		&year.AcademicYearID,
		&year.Name,
		&year.Slug,
		&year.StartDate,
		&year.EndDate,
		&year.IsCurrent,
		&year.CreatedAt,
		&year.CreatedBy,
		&year.LastUpdatedAt,
		&year.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find academic year by ID %s: %w", yearID, err)
	}
	return &year, nil
}

// ListAcademicYears retrieves all academic years, newest first.
func (r *PgxAcademicRepository) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	query := `
		SELECT academic_year_id, name, slug, start_date, end_date, is_current, created_at, created_by, last_updated_at, last_updated_by
		FROM academic_years
		ORDER BY start_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list academic years: %w", err)
	}
	defer rows.Close()

	var years []domain.AcademicYear
	for rows.Next() {
		var year domain.AcademicYear
		if err := rows.Scan(
			&year.AcademicYearID,
			&year.Name,
			&year.Slug,
			&year.StartDate,
			&year.EndDate,
			&year.IsCurrent,
			&year.CreatedAt,
			&year.CreatedBy,
			&year.LastUpdatedAt,
			&year.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan academic year row: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic year rows: %w", err)
	}
	return years, nil
}

// UpdateAcademicYear updates an existing academic year. The slug is immutable.
func (r *PgxAcademicRepository) UpdateAcademicYear(ctx context.Context, year domain.AcademicYear) error {
	query := `
		UPDATE academic_years
		SET name = $2, start_date = $3, end_date = $4, is_current = $5, last_updated_at = $6, last_updated_by = $7
		WHERE academic_year_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		year.AcademicYearID,
		year.Name,
		year.StartDate,
		year.EndDate,
		year.IsCurrent,
		year.LastUpdatedAt,
		year.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update academic year %s: %w", year.AcademicYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAcademicYear removes an academic year.
func (r *PgxAcademicRepository) DeleteAcademicYear(ctx context.Context, yearID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM academic_years WHERE academic_year_id = $1;`, yearID)
	if err != nil {
		return fmt.Errorf("failed to delete academic year %s: %w", yearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTerm inserts a new term.
func (r *PgxAcademicRepository) SaveTerm(ctx context.Context, term domain.Term) error {
	query := `
		INSERT INTO terms (term_id, academic_year_id, name, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		term.TermID,
		term.AcademicYearID,
		term.Name,
		term.StartDate,
		term.EndDate,
		term.CreatedAt,
		term.CreatedBy,
		term.LastUpdatedAt,
		term.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save term %s: %w", term.TermID, err)
	}
	return nil
}

// FindTermByID retrieves a term by its ID.
func (r *PgxAcademicRepository) FindTermByID(ctx context.Context, termID string) (*domain.Term, error) {
	query := `
		SELECT term_id, academic_year_id, name, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by
		FROM terms
		WHERE term_id = $1;
	`
	var term domain.Term
	err := r.Pool.QueryRow(ctx, query, termID).Scan(
		&term.TermID,
		&term.AcademicYearID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
		&term.CreatedBy,
		&term.LastUpdatedAt,
		&term.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find term by ID %s: %w", termID, err)
	}
	return &term, nil
}

// ListTerms retrieves the terms of one year, or all terms when the filter is empty.
func (r *PgxAcademicRepository) ListTerms(ctx context.Context, academicYearID string) ([]domain.Term, error) {
	query := `
		SELECT term_id, academic_year_id, name, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by
		FROM terms
		WHERE ($1 = '' OR academic_year_id = $1)
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	defer rows.Close()

	var terms []domain.Term
	for rows.Next() {
		var term domain.Term
		if err := rows.Scan(
			&term.TermID,
			&term.AcademicYearID,
			&term.Name,
			&term.StartDate,
			&term.EndDate,
			&term.CreatedAt,
			&term.CreatedBy,
			&term.LastUpdatedAt,
			&term.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan term row: %w", err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term rows: %w", err)
	}
	return terms, nil
}

// UpdateTerm updates an existing term.
func (r *PgxAcademicRepository) UpdateTerm(ctx context.Context, term domain.Term) error {
	query := `
		UPDATE terms
		SET name = $2, start_date = $3, end_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE term_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		term.TermID,
		term.Name,
		term.StartDate,
		term.EndDate,
		term.LastUpdatedAt,
		term.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update term %s: %w", term.TermID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTerm removes a term.
func (r *PgxAcademicRepository) DeleteTerm(ctx context.Context, termID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM terms WHERE term_id = $1;`, termID)
	if err != nil {
		return fmt.Errorf("failed to delete term %s: %w", termID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
