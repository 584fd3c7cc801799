package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// recordsService manages scholarships, fines, budgets and expenses.
type recordsService struct {
	recordsRepo portsrepo.RecordsRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewRecordsService creates a new RecordsService.
func NewRecordsService(
	recordsRepo portsrepo.RecordsRepositoryFacade,
	studentRepo portsrepo.StudentRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.RecordsSvcFacade {
	return &recordsService{
		recordsRepo: recordsRepo,
		studentRepo: studentRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.RecordsSvcFacade = (*recordsService)(nil)

func (s *recordsService) requireStudent(ctx context.Context, studentID string) error {
	if _, err := s.studentRepo.FindStudentByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: student %s", apperrors.ErrNotFound, studentID)
		}
		return err
	}
	return nil
}

func (s *recordsService) requireAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return err
	}
	return nil
}

// CreateScholarship awards a scholarship to a student. Either a fixed amount
// or a percentage must be given.
func (s *recordsService) CreateScholarship(ctx context.Context, req dto.CreateScholarshipRequest, userID string) (*domain.Scholarship, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() || req.Percentage.IsNegative() {
		return nil, fmt.Errorf("%w: scholarship amounts cannot be negative", apperrors.ErrValidation)
	}
	if req.Amount.IsZero() && req.Percentage.IsZero() {
		return nil, fmt.Errorf("%w: either amount or percentage is required", apperrors.ErrValidation)
	}
	if err := s.requireStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	scholarship := domain.Scholarship{
		ScholarshipID:  uuid.NewString(),
		StudentID:      req.StudentID,
		AcademicYearID: req.AcademicYearID,
		Name:           req.Name,
		Amount:         req.Amount,
		Percentage:     req.Percentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recordsRepo.SaveScholarship(ctx, scholarship); err != nil {
		logger.Error("Failed to save scholarship", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save scholarship: %w", err)
	}
	logger.Info("Scholarship created", slog.String("scholarship_id", scholarship.ScholarshipID))
	return &scholarship, nil
}

func (s *recordsService) GetScholarshipByID(ctx context.Context, id string) (*domain.Scholarship, error) {
	return s.recordsRepo.FindScholarshipByID(ctx, id)
}

func (s *recordsService) ListScholarships(ctx context.Context, params dto.ListScholarshipsParams) ([]domain.Scholarship, error) {
	return s.recordsRepo.ListScholarships(ctx, params)
}

func (s *recordsService) UpdateScholarship(ctx context.Context, id string, req dto.UpdateScholarshipRequest, userID string) (*domain.Scholarship, error) {
	scholarship, err := s.recordsRepo.FindScholarshipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		scholarship.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		scholarship.Amount = *req.Amount
	}
	if req.Percentage != nil {
		if req.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: percentage cannot be negative", apperrors.ErrValidation)
		}
		scholarship.Percentage = *req.Percentage
	}

	scholarship.LastUpdatedAt = time.Now().UTC()
	scholarship.LastUpdatedBy = userID

	if err := s.recordsRepo.UpdateScholarship(ctx, *scholarship); err != nil {
		return nil, fmt.Errorf("failed to update scholarship: %w", err)
	}
	return scholarship, nil
}

func (s *recordsService) DeleteScholarship(ctx context.Context, id string) error {
	return s.recordsRepo.DeleteScholarship(ctx, id)
}

// CreateFine issues a fine against a student.
func (s *recordsService) CreateFine(ctx context.Context, req dto.CreateFineRequest, userID string) (*domain.Fine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: fine amount must be positive", apperrors.ErrValidation)
	}
	if err := s.requireStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issued := req.IssuedDate
	if issued.IsZero() {
		issued = now
	}
	fine := domain.Fine{
		FineID:     uuid.NewString(),
		StudentID:  req.StudentID,
		Reason:     req.Reason,
		Amount:     req.Amount,
		IssuedDate: issued,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recordsRepo.SaveFine(ctx, fine); err != nil {
		logger.Error("Failed to save fine", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fine: %w", err)
	}
	logger.Info("Fine issued", slog.String("fine_id", fine.FineID), slog.String("student_id", fine.StudentID))
	return &fine, nil
}

func (s *recordsService) GetFineByID(ctx context.Context, id string) (*domain.Fine, error) {
	return s.recordsRepo.FindFineByID(ctx, id)
}

func (s *recordsService) ListFines(ctx context.Context, params dto.ListFinesParams) ([]domain.Fine, error) {
	return s.recordsRepo.ListFines(ctx, params)
}

func (s *recordsService) UpdateFine(ctx context.Context, id string, req dto.UpdateFineRequest, userID string) (*domain.Fine, error) {
	fine, err := s.recordsRepo.FindFineByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Reason != nil {
		fine.Reason = *req.Reason
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: fine amount must be positive", apperrors.ErrValidation)
		}
		fine.Amount = *req.Amount
	}

	fine.LastUpdatedAt = time.Now().UTC()
	fine.LastUpdatedBy = userID

	if err := s.recordsRepo.UpdateFine(ctx, *fine); err != nil {
		return nil, fmt.Errorf("failed to update fine: %w", err)
	}
	return fine, nil
}

func (s *recordsService) DeleteFine(ctx context.Context, id string) error {
	return s.recordsRepo.DeleteFine(ctx, id)
}

// CreateBudget allocates an amount to an expense account for a year.
func (s *recordsService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}
	if err := s.requireAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		AccountID:      req.AccountID,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		Name:           req.Name,
		Amount:         req.Amount,
		Variance:       req.Amount, // nothing spent yet
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recordsRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

// GetBudgetByID loads a budget and fills the derived spend and variance from
// the expenses charged against it.
func (s *recordsService) GetBudgetByID(ctx context.Context, id string) (*domain.Budget, error) {
	budget, err := s.recordsRepo.FindBudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	spent, err := s.recordsRepo.SumExpensesByBudgetID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to total budget spend: %w", err)
	}
	budget.Spent = spent
	budget.Variance = budget.Amount.Sub(spent)
	return budget, nil
}

func (s *recordsService) ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	budgets, err := s.recordsRepo.ListBudgets(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		spent, err := s.recordsRepo.SumExpensesByBudgetID(ctx, budgets[i].BudgetID)
		if err != nil {
			return nil, fmt.Errorf("failed to total budget spend: %w", err)
		}
		budgets[i].Spent = spent
		budgets[i].Variance = budgets[i].Amount.Sub(spent)
	}
	return budgets, nil
}

func (s *recordsService) UpdateBudget(ctx context.Context, id string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	budget, err := s.recordsRepo.FindBudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}

	budget.LastUpdatedAt = time.Now().UTC()
	budget.LastUpdatedBy = userID

	if err := s.recordsRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return s.GetBudgetByID(ctx, id)
}

func (s *recordsService) DeleteBudget(ctx context.Context, id string) error {
	return s.recordsRepo.DeleteBudget(ctx, id)
}

// CreateExpense records money spent, optionally charged against a budget.
func (s *recordsService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if err := s.requireAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}
	if req.BudgetID != nil {
		if _, err := s.recordsRepo.FindBudgetByID(ctx, *req.BudgetID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, *req.BudgetID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = now
	}
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		AccountID:   req.AccountID,
		BudgetID:    req.BudgetID,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recordsRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	logger.Info("Expense recorded", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

func (s *recordsService) GetExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	return s.recordsRepo.FindExpenseByID(ctx, id)
}

func (s *recordsService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	return s.recordsRepo.ListExpenses(ctx, params)
}

func (s *recordsService) UpdateExpense(ctx context.Context, id string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	expense, err := s.recordsRepo.FindExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = userID

	if err := s.recordsRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *recordsService) DeleteExpense(ctx context.Context, id string) error {
	return s.recordsRepo.DeleteExpense(ctx, id)
}
