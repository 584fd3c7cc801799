package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// ListLedgerParams carries the ledger projection filter. An empty AccountID
// means all accounts.
type ListLedgerParams struct {
	AccountID string `form:"accountID"`
}

// LedgerEntryResponse is one row of the ledger projection.
type LedgerEntryResponse struct {
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

// ToLedgerEntryResponses converts the domain projection rows.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LedgerEntryResponse{
			LineID:      e.LineID,
			JournalID:   e.JournalID,
			JournalDate: e.JournalDate,
			Description: e.Description,
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     e.Balance,
		}
	}
	return responses
}
