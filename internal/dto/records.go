package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateScholarshipRequest defines the payload for awarding a scholarship.
type CreateScholarshipRequest struct {
	StudentID      string          `json:"studentID" binding:"required"`
	AcademicYearID string          `json:"academicYearID" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
}

// UpdateScholarshipRequest allows partial update of a scholarship.
type UpdateScholarshipRequest struct {
	Name       *string          `json:"name"`
	Amount     *decimal.Decimal `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
}

// CreateFineRequest defines the payload for issuing a fine.
type CreateFineRequest struct {
	StudentID  string          `json:"studentID" binding:"required"`
	Reason     string          `json:"reason" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	IssuedDate time.Time       `json:"issuedDate"`
}

// UpdateFineRequest allows partial update of a fine.
type UpdateFineRequest struct {
	Reason *string          `json:"reason"`
	Amount *decimal.Decimal `json:"amount"`
}

// CreateBudgetRequest defines the payload for allocating a budget.
type CreateBudgetRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	AcademicYearID string          `json:"academicYearID" binding:"required"`
	TermID         *string         `json:"termID"`
	Name           string          `json:"name" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetRequest allows partial update of a budget.
type UpdateBudgetRequest struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
}

// CreateExpenseRequest defines the payload for recording an expense.
type CreateExpenseRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	BudgetID    *string         `json:"budgetID"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate"`
}

// UpdateExpenseRequest allows partial update of an expense.
type UpdateExpenseRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time       `json:"expenseDate"`
}

// ListScholarshipsParams carries supported list filters.
type ListScholarshipsParams struct {
	StudentID      string `form:"studentID"`
	AcademicYearID string `form:"academicYearID"`
}

// ListFinesParams carries supported list filters.
type ListFinesParams struct {
	StudentID string `form:"studentID"`
}

// ListBudgetsParams carries supported list filters.
type ListBudgetsParams struct {
	AccountID      string `form:"accountID"`
	AcademicYearID string `form:"academicYearID"`
}

// ListExpensesParams carries supported list filters.
type ListExpensesParams struct {
	AccountID string `form:"accountID"`
	BudgetID  string `form:"budgetID"`
}

// ScholarshipResponse defines the data returned for a scholarship.
type ScholarshipResponse struct {
	ScholarshipID  string          `json:"scholarshipID"`
	StudentID      string          `json:"studentID"`
	AcademicYearID string          `json:"academicYearID"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
}

// FineResponse defines the data returned for a fine.
type FineResponse struct {
	FineID     string          `json:"fineID"`
	StudentID  string          `json:"studentID"`
	Reason     string          `json:"reason"`
	Amount     decimal.Decimal `json:"amount"`
	IssuedDate time.Time       `json:"issuedDate"`
}

// BudgetResponse defines the data returned for a budget, including the spend
// and variance figures derived from its expenses.
type BudgetResponse struct {
	BudgetID       string          `json:"budgetID"`
	AccountID      string          `json:"accountID"`
	AcademicYearID string          `json:"academicYearID"`
	TermID         *string         `json:"termID,omitempty"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Spent          decimal.Decimal `json:"spent"`
	Variance       decimal.Decimal `json:"variance"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	AccountID   string          `json:"accountID"`
	BudgetID    *string         `json:"budgetID,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
}

// ToScholarshipResponse converts a domain.Scholarship to its response DTO.
func ToScholarshipResponse(s *domain.Scholarship) ScholarshipResponse {
	return ScholarshipResponse{
		ScholarshipID:  s.ScholarshipID,
		StudentID:      s.StudentID,
		AcademicYearID: s.AcademicYearID,
		Name:           s.Name,
		Amount:         s.Amount,
		Percentage:     s.Percentage,
	}
}

// ToScholarshipResponses converts a slice of domain scholarships.
func ToScholarshipResponses(items []domain.Scholarship) []ScholarshipResponse {
	responses := make([]ScholarshipResponse, len(items))
	for i := range items {
		responses[i] = ToScholarshipResponse(&items[i])
	}
	return responses
}

// ToFineResponse converts a domain.Fine to its response DTO.
func ToFineResponse(f *domain.Fine) FineResponse {
	return FineResponse{
		FineID:     f.FineID,
		StudentID:  f.StudentID,
		Reason:     f.Reason,
		Amount:     f.Amount,
		IssuedDate: f.IssuedDate,
	}
}

// ToFineResponses converts a slice of domain fines.
func ToFineResponses(items []domain.Fine) []FineResponse {
	responses := make([]FineResponse, len(items))
	for i := range items {
		responses[i] = ToFineResponse(&items[i])
	}
	return responses
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		AccountID:      b.AccountID,
		AcademicYearID: b.AcademicYearID,
		TermID:         b.TermID,
		Name:           b.Name,
		Amount:         b.Amount,
		Spent:          b.Spent,
		Variance:       b.Variance,
	}
}

// ToBudgetResponses converts a slice of domain budgets.
func ToBudgetResponses(items []domain.Budget) []BudgetResponse {
	responses := make([]BudgetResponse, len(items))
	for i := range items {
		responses[i] = ToBudgetResponse(&items[i])
	}
	return responses
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		AccountID:   e.AccountID,
		BudgetID:    e.BudgetID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(items []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(items))
	for i := range items {
		responses[i] = ToExpenseResponse(&items[i])
	}
	return responses
}
