package domain

import "github.com/shopspring/decimal"

// FeeItem is a catalog entry for a billable fee, e.g. "Tuition" or "Transport".
type FeeItem struct {
	FeeItemID     string          `json:"feeItemID"` // Primary key (UUID)
	Slug          string          `json:"slug"`      // Unique, derived from the name
	Name          string          `json:"name"`
	DefaultAmount decimal.Decimal `json:"defaultAmount"`
	Optional      bool            `json:"optional"` // Optional fees are skipped by invoice generation
	AuditFields
}

// FeeStructure binds a fee item to a class level within a year/term, overriding
// the item's default amount.
type FeeStructure struct {
	FeeStructureID string          `json:"feeStructureID"` // Primary key (UUID)
	FeeItemID      string          `json:"feeItemID"`      // FK -> fee_items (Not Null)
	ClassLevel     string          `json:"classLevel"`     // e.g. "FORM-1"
	AcademicYearID string          `json:"academicYearID"`
	TermID         string          `json:"termID"`
	Amount         decimal.Decimal `json:"amount"`
	AuditFields
}
