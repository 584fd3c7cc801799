package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple lines.
// It is scoped to an academic year and term.
type Journal struct {
	JournalID      string        `json:"journalID"`   // Primary key (UUID)
	JournalDate    time.Time     `json:"journalDate"` // Date the event occurred
	Description    string        `json:"description"`
	PostedBy       string        `json:"postedBy"` // Identity of the poster
	AcademicYearID string        `json:"academicYearID"`
	TermID         string        `json:"termID"`
	Status         JournalStatus `json:"status"` // Default: POSTED
	// Reversal links. A journal that reverses another carries OriginalJournalID;
	// the reversed journal carries ReversingJournalID.
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"`
	Lines              []JournalLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// JournalLine is one debit-or-credit leg of a journal against a specific account.
// Exactly one of Debit/Credit is nonzero in well-formed data; the composer
// rejects lines that set both.
type JournalLine struct {
	LineID    string          `json:"lineID"`    // Primary key (UUID)
	JournalID string          `json:"journalID"` // FK -> journals (Not Null)
	AccountID string          `json:"accountID"` // FK -> accounts (Not Null)
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes"` // Nullable
	AuditFields
}
