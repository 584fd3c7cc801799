package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// SignedContribution returns the effect of a journal line on the balance of an
// account, applying the normal-balance convention.
// A debit increases a debit-normal account (ASSET/EXPENSE) and decreases a
// credit-normal one (LIABILITY/EQUITY/REVENUE); a credit does the opposite.
func SignedContribution(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}
	if accountType.DebitNormal() {
		return line.Debit.Sub(line.Credit), nil
	}
	return line.Credit.Sub(line.Debit), nil
}

// SumDebitsAndCredits totals both sides of a line set.
func SumDebitsAndCredits(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// RunningBalances computes the balance after each entry, applying entries
// oldest-first starting from opening. Entries must be ordered newest-first
// (the ledger's presentation order); the returned slice is aligned with the
// input, so entries[i] pairs with balances[i].
func RunningBalances(entries []domain.LedgerEntry, accountType domain.AccountType, opening decimal.Decimal) ([]decimal.Decimal, error) {
	balances := make([]decimal.Decimal, len(entries))
	balance := opening
	for i := len(entries) - 1; i >= 0; i-- {
		contribution, err := SignedContribution(domain.JournalLine{
			AccountID: entries[i].AccountID,
			Debit:     entries[i].Debit,
			Credit:    entries[i].Credit,
		}, accountType)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(contribution)
		balances[i] = balance
	}
	return balances, nil
}
