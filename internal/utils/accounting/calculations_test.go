package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/utils/accounting"
)

func line(debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		AccountID: "acc-1",
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestSignedContribution(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		expected    int64
	}{
		{"debit increases asset", line(100, 0), domain.Asset, 100},
		{"credit decreases asset", line(0, 40), domain.Asset, -40},
		{"debit increases expense", line(25, 0), domain.ExpenseAccount, 25},
		{"credit increases liability", line(0, 100), domain.Liability, 100},
		{"debit decreases liability", line(30, 0), domain.Liability, -30},
		{"credit increases revenue", line(0, 500), domain.Revenue, 500},
		{"credit increases equity", line(0, 200), domain.Equity, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedContribution(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "got %s", got)
		})
	}
}

func TestSignedContribution_UnknownType(t *testing.T) {
	_, err := accounting.SignedContribution(line(10, 0), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestSumDebitsAndCredits(t *testing.T) {
	lines := []domain.JournalLine{
		line(100, 0),
		line(50, 0),
		line(0, 150),
	}

	debits, credits := accounting.SumDebitsAndCredits(lines)
	assert.True(t, debits.Equal(decimal.NewFromInt(150)))
	assert.True(t, credits.Equal(decimal.NewFromInt(150)))
}

func TestSumDebitsAndCredits_Empty(t *testing.T) {
	debits, credits := accounting.SumDebitsAndCredits(nil)
	assert.True(t, debits.IsZero())
	assert.True(t, credits.IsZero())
}

func TestRunningBalances_NewestFirstInput(t *testing.T) {
	now := time.Now()
	// Presentation order, newest first. Chronologically: +100, -40, -10.
	entries := []domain.LedgerEntry{
		{AccountID: "acc-1", JournalDate: now, Credit: decimal.NewFromInt(10)},
		{AccountID: "acc-1", JournalDate: now.Add(-time.Hour), Credit: decimal.NewFromInt(40)},
		{AccountID: "acc-1", JournalDate: now.Add(-2 * time.Hour), Debit: decimal.NewFromInt(100)},
	}

	balances, err := accounting.RunningBalances(entries, domain.Asset, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	// balances[i] pairs with entries[i]: newest row carries the final balance.
	assert.True(t, balances[0].Equal(decimal.NewFromInt(50)), "got %s", balances[0])
	assert.True(t, balances[1].Equal(decimal.NewFromInt(60)), "got %s", balances[1])
	assert.True(t, balances[2].Equal(decimal.NewFromInt(100)), "got %s", balances[2])
}

func TestRunningBalances_Opening(t *testing.T) {
	entries := []domain.LedgerEntry{
		{AccountID: "acc-1", Debit: decimal.NewFromInt(20)},
	}

	balances, err := accounting.RunningBalances(entries, domain.Asset, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, balances[0].Equal(decimal.NewFromInt(120)))
}

func TestRunningBalances_CreditNormal(t *testing.T) {
	now := time.Now()
	entries := []domain.LedgerEntry{
		{AccountID: "acc-1", JournalDate: now, Debit: decimal.NewFromInt(20)},
		{AccountID: "acc-1", JournalDate: now.Add(-time.Hour), Credit: decimal.NewFromInt(100)},
	}

	balances, err := accounting.RunningBalances(entries, domain.Revenue, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, balances[0].Equal(decimal.NewFromInt(80)))
	assert.True(t, balances[1].Equal(decimal.NewFromInt(100)))
}
