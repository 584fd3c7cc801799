package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scholarship reduces what a student owes for a year. Amount is a fixed figure;
// a zero amount with a nonzero percentage means a percentage award.
type Scholarship struct {
	ScholarshipID  string          `json:"scholarshipID"` // Primary key (UUID)
	StudentID      string          `json:"studentID"`     // FK -> students (Not Null)
	AcademicYearID string          `json:"academicYearID"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
	AuditFields
}

// Fine is a standalone charge against a student, outside the fee structure.
type Fine struct {
	FineID     string          `json:"fineID"`    // Primary key (UUID)
	StudentID  string          `json:"studentID"` // FK -> students (Not Null)
	Reason     string          `json:"reason"`
	Amount     decimal.Decimal `json:"amount"`
	IssuedDate time.Time       `json:"issuedDate"`
	AuditFields
}

// Budget allocates an amount to an expense account for a year (optionally a term).
type Budget struct {
	BudgetID       string          `json:"budgetID"`  // Primary key (UUID)
	AccountID      string          `json:"accountID"` // FK -> accounts (Not Null)
	AcademicYearID string          `json:"academicYearID"`
	TermID         *string         `json:"termID,omitempty"` // Nullable: year-wide when absent
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	// Derived on read: total of expenses charged to this budget and the remainder.
	Spent    decimal.Decimal `json:"spent"`
	Variance decimal.Decimal `json:"variance"`
	AuditFields
}

// Expense is money spent, optionally charged against a budget.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary key (UUID)
	AccountID   string          `json:"accountID"` // FK -> accounts (Not Null)
	BudgetID    *string         `json:"budgetID,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	AuditFields
}
