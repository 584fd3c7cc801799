package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateJournalLineRequest is one leg of a journal submission. Missing debit or
// credit defaults to zero; the service rejects lines that set both sides.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes"`
}

// CreateJournalRequest defines the payload for creating a journal with its lines.
type CreateJournalRequest struct {
	Date           time.Time                  `json:"date" binding:"required"`
	Description    string                     `json:"description" binding:"required"`
	PostedBy       string                     `json:"postedBy" binding:"required"`
	AcademicYearID string                     `json:"academicYearID" binding:"required"`
	TermID         string                     `json:"termID" binding:"required"`
	Lines          []CreateJournalLineRequest `json:"lines"`
}

// UpdateJournalRequest allows partial update of entry-level fields only.
type UpdateJournalRequest struct {
	Date           *time.Time `json:"date"`
	Description    *string    `json:"description"`
	PostedBy       *string    `json:"postedBy"`
	AcademicYearID *string    `json:"academicYearID"`
	TermID         *string    `json:"termID"`
}

// UpdateJournalLineRequest allows partial update of a single line.
type UpdateJournalLineRequest struct {
	AccountID *string          `json:"accountID"`
	Debit     *decimal.Decimal `json:"debit"`
	Credit    *decimal.Decimal `json:"credit"`
	Notes     *string          `json:"notes"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	JournalID string          `json:"journalID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               time.Time             `json:"date"`
	Description        string                `json:"description"`
	PostedBy           string                `json:"postedBy"`
	AcademicYearID     string                `json:"academicYearID"`
	TermID             string                `json:"termID"`
	Status             string                `json:"status"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	Lines              []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
}

// ListJournalsParams carries the supported list filters.
type ListJournalsParams struct {
	AcademicYearID string `form:"academicYearID"`
	TermID         string `form:"termID"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:    line.LineID,
		JournalID: line.JournalID,
		AccountID: line.AccountID,
		Debit:     line.Debit,
		Credit:    line.Credit,
		Notes:     line.Notes,
	}
}

// ToJournalResponse converts a domain.Journal (with any loaded lines) to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Description:        j.Description,
		PostedBy:           j.PostedBy,
		AcademicYearID:     j.AcademicYearID,
		TermID:             j.TermID,
		Status:             string(j.Status),
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(&j.Lines[i])
		}
	}
	return resp
}

// ToJournalResponses converts a slice of domain journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
