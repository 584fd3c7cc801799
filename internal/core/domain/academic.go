package domain

import "time"

// AcademicYear is the top-level scope for terms, fee structures, journals and
// invoices. Slug is unique and generated from the name.
type AcademicYear struct {
	AcademicYearID string    `json:"academicYearID"` // Primary key (UUID)
	Name           string    `json:"name"`           // e.g. "2024-2025"
	Slug           string    `json:"slug"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsCurrent      bool      `json:"isCurrent"`
	AuditFields
}

// Term is one period within an academic year.
type Term struct {
	TermID         string    `json:"termID"`         // Primary key (UUID)
	AcademicYearID string    `json:"academicYearID"` // FK -> academic_years (Not Null)
	Name           string    `json:"name"`           // e.g. "Term 1"
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	AuditFields
}
