package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

func TestAccountType_IsValid(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		want        bool
	}{
		{"asset", domain.Asset, true},
		{"liability", domain.Liability, true},
		{"equity", domain.Equity, true},
		{"revenue", domain.Revenue, true},
		{"expense", domain.ExpenseAccount, true},
		{"unknown", domain.AccountType("SAVINGS"), false},
		{"empty", domain.AccountType(""), false},
		{"wrong case", domain.AccountType("asset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.IsValid())
		})
	}
}

func TestAccountType_DebitNormal(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		want        bool
	}{
		{"asset is debit-normal", domain.Asset, true},
		{"expense is debit-normal", domain.ExpenseAccount, true},
		{"liability is credit-normal", domain.Liability, false},
		{"equity is credit-normal", domain.Equity, false},
		{"revenue is credit-normal", domain.Revenue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.DebitNormal())
		})
	}
}

// The EXPENSE classification constant and the Expense record are distinct
// identifiers in this package; both stay usable side by side.
func TestExpenseAccountConstantDistinctFromExpenseRecord(t *testing.T) {
	account := domain.Account{
		Code:        "5010",
		Name:        "Office Supplies",
		AccountType: domain.ExpenseAccount,
	}
	expense := domain.Expense{
		AccountID: account.AccountID,
		Amount:    decimal.NewFromInt(250),
	}

	assert.Equal(t, domain.AccountType("EXPENSE"), account.AccountType)
	assert.True(t, account.AccountType.DebitNormal())
	assert.True(t, expense.Amount.IsPositive())
}
