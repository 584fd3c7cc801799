package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	"github.com/shulebooks/sba_backend/internal/dto"
)

type PgxRecordsRepository struct {
	BaseRepository
}

// newPgxRecordsRepository creates a new repository for scholarship, fine,
// budget and expense data.
func newPgxRecordsRepository(pool *pgxpool.Pool) portsrepo.RecordsRepositoryFacade {
	return &PgxRecordsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecordsRepositoryFacade = (*PgxRecordsRepository)(nil)

// SaveScholarship inserts a new scholarship.
func (r *PgxRecordsRepository) SaveScholarship(ctx context.Context, s domain.Scholarship) error {
	query := `
		INSERT INTO scholarships (scholarship_id, student_id, academic_year_id, name, amount, percentage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		s.ScholarshipID, s.StudentID, s.AcademicYearID, s.Name, s.Amount, s.Percentage,
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save scholarship %s: %w", s.ScholarshipID, err)
	}
	return nil
}

func scanScholarship(row pgx.Row) (domain.Scholarship, error) {
	var s domain.Scholarship
	err := row.Scan(
		&s.ScholarshipID, &s.StudentID, &s.AcademicYearID, &s.Name, &s.Amount, &s.Percentage,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	return s, err
}

const scholarshipColumns = `scholarship_id, student_id, academic_year_id, name, amount, percentage, created_at, created_by, last_updated_at, last_updated_by`

// FindScholarshipByID retrieves a scholarship by its ID.
func (r *PgxRecordsRepository) FindScholarshipByID(ctx context.Context, id string) (*domain.Scholarship, error) {
	query := `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE scholarship_id = $1;`
	s, err := scanScholarship(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find scholarship by ID %s: %w", id, err)
	}
	return &s, nil
}

// ListScholarships retrieves scholarships matching the filters.
func (r *PgxRecordsRepository) ListScholarships(ctx context.Context, params dto.ListScholarshipsParams) ([]domain.Scholarship, error) {
	query := `
		SELECT ` + scholarshipColumns + `
		FROM scholarships
		WHERE ($1 = '' OR student_id = $1)
		  AND ($2 = '' OR academic_year_id = $2)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, params.StudentID, params.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}
	defer rows.Close()

	var items []domain.Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scholarship row: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scholarship rows: %w", err)
	}
	return items, nil
}

// UpdateScholarship updates an existing scholarship.
func (r *PgxRecordsRepository) UpdateScholarship(ctx context.Context, s domain.Scholarship) error {
	query := `
		UPDATE scholarships
		SET name = $2, amount = $3, percentage = $4, last_updated_at = $5, last_updated_by = $6
		WHERE scholarship_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, s.ScholarshipID, s.Name, s.Amount, s.Percentage, s.LastUpdatedAt, s.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update scholarship %s: %w", s.ScholarshipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteScholarship removes a scholarship.
func (r *PgxRecordsRepository) DeleteScholarship(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM scholarships WHERE scholarship_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scholarship %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const fineColumns = `fine_id, student_id, reason, amount, issued_date, created_at, created_by, last_updated_at, last_updated_by`

func scanFine(row pgx.Row) (domain.Fine, error) {
	var f domain.Fine
	err := row.Scan(
		&f.FineID, &f.StudentID, &f.Reason, &f.Amount, &f.IssuedDate,
		&f.CreatedAt, &f.CreatedBy, &f.LastUpdatedAt, &f.LastUpdatedBy,
	)
	return f, err
}

// SaveFine inserts a new fine.
func (r *PgxRecordsRepository) SaveFine(ctx context.Context, f domain.Fine) error {
	query := `
		INSERT INTO fines (` + fineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		f.FineID, f.StudentID, f.Reason, f.Amount, f.IssuedDate,
		f.CreatedAt, f.CreatedBy, f.LastUpdatedAt, f.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fine %s: %w", f.FineID, err)
	}
	return nil
}

// FindFineByID retrieves a fine by its ID.
func (r *PgxRecordsRepository) FindFineByID(ctx context.Context, id string) (*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE fine_id = $1;`
	f, err := scanFine(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fine by ID %s: %w", id, err)
	}
	return &f, nil
}

// ListFines retrieves fines matching the filters, newest first.
func (r *PgxRecordsRepository) ListFines(ctx context.Context, params dto.ListFinesParams) ([]domain.Fine, error) {
	query := `
		SELECT ` + fineColumns + `
		FROM fines
		WHERE ($1 = '' OR student_id = $1)
		ORDER BY issued_date DESC, fine_id;
	`
	rows, err := r.Pool.Query(ctx, query, params.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fines: %w", err)
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fine row: %w", err)
		}
		fines = append(fines, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fine rows: %w", err)
	}
	return fines, nil
}

// UpdateFine updates an existing fine.
func (r *PgxRecordsRepository) UpdateFine(ctx context.Context, f domain.Fine) error {
	query := `
		UPDATE fines
		SET reason = $2, amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fine_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, f.FineID, f.Reason, f.Amount, f.LastUpdatedAt, f.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update fine %s: %w", f.FineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFine removes a fine.
func (r *PgxRecordsRepository) DeleteFine(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fines WHERE fine_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fine %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const budgetColumns = `budget_id, account_id, academic_year_id, term_id, name, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	var termID sql.NullString
	err := row.Scan(
		&b.BudgetID, &b.AccountID, &b.AcademicYearID, &termID, &b.Name, &b.Amount,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if termID.Valid {
		b.TermID = &termID.String
	}
	return b, err
}

// SaveBudget inserts a new budget.
func (r *PgxRecordsRepository) SaveBudget(ctx context.Context, b domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		b.BudgetID, b.AccountID, b.AcademicYearID, b.TermID, b.Name, b.Amount,
		b.CreatedAt, b.CreatedBy, b.LastUpdatedAt, b.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget %s: %w", b.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID. Spent and Variance are derived
// by the service, not stored.
func (r *PgxRecordsRepository) FindBudgetByID(ctx context.Context, id string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	b, err := scanBudget(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", id, err)
	}
	return &b, nil
}

// ListBudgets retrieves budgets matching the filters.
func (r *PgxRecordsRepository) ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE ($1 = '' OR account_id = $1)
		  AND ($2 = '' OR academic_year_id = $2)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, params.AccountID, params.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

// UpdateBudget updates an existing budget.
func (r *PgxRecordsRepository) UpdateBudget(ctx context.Context, b domain.Budget) error {
	query := `
		UPDATE budgets
		SET name = $2, amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, b.BudgetID, b.Name, b.Amount, b.LastUpdatedAt, b.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", b.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *PgxRecordsRepository) DeleteBudget(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumExpensesByBudgetID totals the expenses charged against the budget.
func (r *PgxRecordsRepository) SumExpensesByBudgetID(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE budget_id = $1;`, budgetID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total expenses for budget %s: %w", budgetID, err)
	}
	return total, nil
}

const expenseColumns = `expense_id, account_id, budget_id, description, amount, expense_date, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	var budgetID sql.NullString
	err := row.Scan(
		&e.ExpenseID, &e.AccountID, &budgetID, &e.Description, &e.Amount, &e.ExpenseDate,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if budgetID.Valid {
		e.BudgetID = &budgetID.String
	}
	return e, err
}

// SaveExpense inserts a new expense.
func (r *PgxRecordsRepository) SaveExpense(ctx context.Context, e domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		e.ExpenseID, e.AccountID, e.BudgetID, e.Description, e.Amount, e.ExpenseDate,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", e.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxRecordsRepository) FindExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	e, err := scanExpense(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", id, err)
	}
	return &e, nil
}

// ListExpenses retrieves expenses matching the filters, newest first.
func (r *PgxRecordsRepository) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ($1 = '' OR account_id = $1)
		  AND ($2 = '' OR budget_id = $2)
		ORDER BY expense_date DESC, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, params.AccountID, params.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// UpdateExpense updates an existing expense.
func (r *PgxRecordsRepository) UpdateExpense(ctx context.Context, e domain.Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, expense_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, e.ExpenseID, e.Description, e.Amount, e.ExpenseDate, e.LastUpdatedAt, e.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", e.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense.
func (r *PgxRecordsRepository) DeleteExpense(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
