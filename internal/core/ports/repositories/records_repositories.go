package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// RecordsRepositoryFacade provides persistence for scholarships, fines,
// budgets and expenses.
type RecordsRepositoryFacade interface {
	SaveScholarship(ctx context.Context, s domain.Scholarship) error
	FindScholarshipByID(ctx context.Context, id string) (*domain.Scholarship, error)
	ListScholarships(ctx context.Context, params dto.ListScholarshipsParams) ([]domain.Scholarship, error)
	UpdateScholarship(ctx context.Context, s domain.Scholarship) error
	DeleteScholarship(ctx context.Context, id string) error

	SaveFine(ctx context.Context, f domain.Fine) error
	FindFineByID(ctx context.Context, id string) (*domain.Fine, error)
	ListFines(ctx context.Context, params dto.ListFinesParams) ([]domain.Fine, error)
	UpdateFine(ctx context.Context, f domain.Fine) error
	DeleteFine(ctx context.Context, id string) error

	SaveBudget(ctx context.Context, b domain.Budget) error
	FindBudgetByID(ctx context.Context, id string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, b domain.Budget) error
	DeleteBudget(ctx context.Context, id string) error
	// SumExpensesByBudgetID totals expenses charged against the budget.
	SumExpensesByBudgetID(ctx context.Context, budgetID string) (decimal.Decimal, error)

	SaveExpense(ctx context.Context, e domain.Expense) error
	FindExpenseByID(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, e domain.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}
