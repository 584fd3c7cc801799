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
	"github.com/shulebooks/sba_backend/internal/dto"
)

type PgxFeeRepository struct {
	BaseRepository
}

// newPgxFeeRepository creates a new repository for fee catalog data.
func newPgxFeeRepository(pool *pgxpool.Pool) portsrepo.FeeRepositoryFacade {
	return &PgxFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

const feeItemColumns = `fee_item_id, slug, name, default_amount, optional, created_at, created_by, last_updated_at, last_updated_by`

func scanFeeItem(row pgx.Row) (domain.FeeItem, error) {
	var item domain.FeeItem
	err := row.Scan(
		&item.FeeItemID,
		&item.Slug,
		&item.Name,
		&item.DefaultAmount,
		&item.Optional,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

// InsertFeeItem inserts a new fee item. A unique violation on the slug comes
// back as apperrors.ErrDuplicate so the service can retry with a suffixed
// candidate.
func (r *PgxFeeRepository) InsertFeeItem(ctx context.Context, item domain.FeeItem) error {
	query := `
		INSERT INTO fee_items (` + feeItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.FeeItemID,
		item.Slug,
		item.Name,
		item.DefaultAmount,
		item.Optional,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fee item slug %s", apperrors.ErrDuplicate, item.Slug)
		}
		return fmt.Errorf("failed to insert fee item %s: %w", item.FeeItemID, err)
	}
	return nil
}

// FindFeeItemByID retrieves a fee item by its ID.
func (r *PgxFeeRepository) FindFeeItemByID(ctx context.Context, feeItemID string) (*domain.FeeItem, error) {
	query := `SELECT ` + feeItemColumns + ` FROM fee_items WHERE fee_item_id = $1;`
	item, err := scanFeeItem(r.Pool.QueryRow(ctx, query, feeItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee item by ID %s: %w", feeItemID, err)
	}
	return &item, nil
}

// FindFeeItemsByIDs retrieves fee items keyed by ID. IDs with no matching row
// are simply absent from the map.
func (r *PgxFeeRepository) FindFeeItemsByIDs(ctx context.Context, feeItemIDs []string) (map[string]domain.FeeItem, error) {
	if len(feeItemIDs) == 0 {
		return map[string]domain.FeeItem{}, nil
	}
	query := `SELECT ` + feeItemColumns + ` FROM fee_items WHERE fee_item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, feeItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find fee items by IDs: %w", err)
	}
	defer rows.Close()

	items := make(map[string]domain.FeeItem, len(feeItemIDs))
	for rows.Next() {
		item, err := scanFeeItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee item row: %w", err)
		}
		items[item.FeeItemID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee item rows: %w", err)
	}
	return items, nil
}

// ListFeeItems retrieves the whole fee catalog ordered by name.
func (r *PgxFeeRepository) ListFeeItems(ctx context.Context) ([]domain.FeeItem, error) {
	query := `SELECT ` + feeItemColumns + ` FROM fee_items ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee items: %w", err)
	}
	defer rows.Close()

	var items []domain.FeeItem
	for rows.Next() {
		item, err := scanFeeItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee item rows: %w", err)
	}
	return items, nil
}

// UpdateFeeItem updates an existing fee item. The slug is immutable.
func (r *PgxFeeRepository) UpdateFeeItem(ctx context.Context, item domain.FeeItem) error {
	query := `
		UPDATE fee_items
		SET name = $2, default_amount = $3, optional = $4, last_updated_at = $5, last_updated_by = $6
		WHERE fee_item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.FeeItemID,
		item.Name,
		item.DefaultAmount,
		item.Optional,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee item %s: %w", item.FeeItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFeeItem removes a fee item.
func (r *PgxFeeRepository) DeleteFeeItem(ctx context.Context, feeItemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fee_items WHERE fee_item_id = $1;`, feeItemID)
	if err != nil {
		return fmt.Errorf("failed to delete fee item %s: %w", feeItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const feeStructureColumns = `fee_structure_id, fee_item_id, class_level, academic_year_id, term_id, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanFeeStructure(row pgx.Row) (domain.FeeStructure, error) {
	var fs domain.FeeStructure
	err := row.Scan(
		&fs.FeeStructureID,
		&fs.FeeItemID,
		&fs.ClassLevel,
		&fs.AcademicYearID,
		&fs.TermID,
		&fs.Amount,
		&fs.CreatedAt,
		&fs.CreatedBy,
		&fs.LastUpdatedAt,
		&fs.LastUpdatedBy,
	)
	return fs, err
}

// SaveFeeStructure inserts a new fee structure.
func (r *PgxFeeRepository) SaveFeeStructure(ctx context.Context, structure domain.FeeStructure) error {
	query := `
		INSERT INTO fee_structures (` + feeStructureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		structure.FeeStructureID,
		structure.FeeItemID,
		structure.ClassLevel,
		structure.AcademicYearID,
		structure.TermID,
		structure.Amount,
		structure.CreatedAt,
		structure.CreatedBy,
		structure.LastUpdatedAt,
		structure.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee structure %s: %w", structure.FeeStructureID, err)
	}
	return nil
}

// FindFeeStructureByID retrieves a fee structure by its ID.
func (r *PgxFeeRepository) FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + ` FROM fee_structures WHERE fee_structure_id = $1;`
	fs, err := scanFeeStructure(r.Pool.QueryRow(ctx, query, feeStructureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee structure by ID %s: %w", feeStructureID, err)
	}
	return &fs, nil
}

// ListFeeStructures retrieves fee structures matching the filters.
func (r *PgxFeeRepository) ListFeeStructures(ctx context.Context, params dto.ListFeeStructuresParams) ([]domain.FeeStructure, error) {
	query := `
		SELECT ` + feeStructureColumns + `
		FROM fee_structures
		WHERE ($1 = '' OR fee_item_id = $1)
		  AND ($2 = '' OR class_level = $2)
		  AND ($3 = '' OR academic_year_id = $3)
		  AND ($4 = '' OR term_id = $4)
		ORDER BY class_level, fee_structure_id;
	`
	rows, err := r.Pool.Query(ctx, query, params.FeeItemID, params.ClassLevel, params.AcademicYearID, params.TermID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}
	defer rows.Close()

	var structures []domain.FeeStructure
	for rows.Next() {
		fs, err := scanFeeStructure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee structure row: %w", err)
		}
		structures = append(structures, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee structure rows: %w", err)
	}
	return structures, nil
}

// UpdateFeeStructure updates an existing fee structure.
func (r *PgxFeeRepository) UpdateFeeStructure(ctx context.Context, structure domain.FeeStructure) error {
	query := `
		UPDATE fee_structures
		SET class_level = $2, amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fee_structure_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		structure.FeeStructureID,
		structure.ClassLevel,
		structure.Amount,
		structure.LastUpdatedAt,
		structure.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee structure %s: %w", structure.FeeStructureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFeeStructure removes a fee structure.
func (r *PgxFeeRepository) DeleteFeeStructure(ctx context.Context, feeStructureID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fee_structures WHERE fee_structure_id = $1;`, feeStructureID)
	if err != nil {
		return fmt.Errorf("failed to delete fee structure %s: %w", feeStructureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
