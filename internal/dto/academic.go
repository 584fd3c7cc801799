package dto

import (
	"time"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateAcademicYearRequest defines the payload for creating an academic year.
// The slug is generated server-side from the name.
type CreateAcademicYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsCurrent bool      `json:"isCurrent"`
}

// UpdateAcademicYearRequest allows partial update of an academic year.
type UpdateAcademicYearRequest struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsCurrent *bool      `json:"isCurrent"`
}

// CreateTermRequest defines the payload for creating a term within a year.
type CreateTermRequest struct {
	AcademicYearID string    `json:"academicYearID" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
}

// UpdateTermRequest allows partial update of a term.
type UpdateTermRequest struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// ListTermsParams carries supported list filters.
type ListTermsParams struct {
	AcademicYearID string `form:"academicYearID"`
}

// AcademicYearResponse defines the data returned for an academic year.
type AcademicYearResponse struct {
	AcademicYearID string    `json:"academicYearID"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsCurrent      bool      `json:"isCurrent"`
}

// TermResponse defines the data returned for a term.
type TermResponse struct {
	TermID         string    `json:"termID"`
	AcademicYearID string    `json:"academicYearID"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

// ToAcademicYearResponse converts a domain.AcademicYear to its response DTO.
func ToAcademicYearResponse(y *domain.AcademicYear) AcademicYearResponse {
	return AcademicYearResponse{
		AcademicYearID: y.AcademicYearID,
		Name:           y.Name,
		Slug:           y.Slug,
		StartDate:      y.StartDate,
		EndDate:        y.EndDate,
		IsCurrent:      y.IsCurrent,
	}
}

// ToAcademicYearResponses converts a slice of domain academic years.
func ToAcademicYearResponses(years []domain.AcademicYear) []AcademicYearResponse {
	responses := make([]AcademicYearResponse, len(years))
	for i := range years {
		responses[i] = ToAcademicYearResponse(&years[i])
	}
	return responses
}

// ToTermResponse converts a domain.Term to its response DTO.
func ToTermResponse(t *domain.Term) TermResponse {
	return TermResponse{
		TermID:         t.TermID,
		AcademicYearID: t.AcademicYearID,
		Name:           t.Name,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
	}
}

// ToTermResponses converts a slice of domain terms.
func ToTermResponses(terms []domain.Term) []TermResponse {
	responses := make([]TermResponse, len(terms))
	for i := range terms {
		responses[i] = ToTermResponse(&terms[i])
	}
	return responses
}
