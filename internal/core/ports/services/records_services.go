package services

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// RecordsSvcFacade manages scholarships, fines, budgets and expenses.
type RecordsSvcFacade interface {
	CreateScholarship(ctx context.Context, req dto.CreateScholarshipRequest, userID string) (*domain.Scholarship, error)
	GetScholarshipByID(ctx context.Context, id string) (*domain.Scholarship, error)
	ListScholarships(ctx context.Context, params dto.ListScholarshipsParams) ([]domain.Scholarship, error)
	UpdateScholarship(ctx context.Context, id string, req dto.UpdateScholarshipRequest, userID string) (*domain.Scholarship, error)
	DeleteScholarship(ctx context.Context, id string) error

	CreateFine(ctx context.Context, req dto.CreateFineRequest, userID string) (*domain.Fine, error)
	GetFineByID(ctx context.Context, id string) (*domain.Fine, error)
	ListFines(ctx context.Context, params dto.ListFinesParams) ([]domain.Fine, error)
	UpdateFine(ctx context.Context, id string, req dto.UpdateFineRequest, userID string) (*domain.Fine, error)
	DeleteFine(ctx context.Context, id string) error

	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)
	// GetBudgetByID fills the derived Spent and Variance figures.
	GetBudgetByID(ctx context.Context, id string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, id string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}
