package domain

// AccountType defines the fundamental accounting classification of an account.
type AccountType string

const (
	Asset          AccountType = "ASSET"
	Liability      AccountType = "LIABILITY"
	Equity         AccountType = "EQUITY"
	Revenue        AccountType = "REVENUE"
	ExpenseAccount AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account classifications.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, ExpenseAccount:
		return true
	}
	return false
}

// DebitNormal reports whether a debit increases the balance of accounts of this type.
// Assets and expenses are debit-normal; liabilities, equity and revenue are credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == ExpenseAccount
}

// Account is a chart-of-accounts entry. Every journal line, budget and expense
// references one. The code is unique and immutable once any journal line uses it.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Unique account code, e.g. "1010"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`
	AuditFields
}
