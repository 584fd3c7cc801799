package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one row of the per-account ledger projection: a journal line
// joined with its parent journal's date and description, plus the running
// balance after applying the line under the account's normal-balance sign.
// The projection is derived from journal data and never stored.
type LedgerEntry struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	JournalDate time.Time       `json:"journalDate"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}
