package dto

import (
	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateStudentRequest defines the payload for enrolling a student.
type CreateStudentRequest struct {
	AdmissionNumber string `json:"admissionNumber" binding:"required"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	ClassLevel      string `json:"classLevel" binding:"required"`
	AcademicYearID  string `json:"academicYearID" binding:"required"`
}

// UpdateStudentRequest allows partial update of a student.
type UpdateStudentRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	ClassLevel     *string `json:"classLevel"`
	AcademicYearID *string `json:"academicYearID"`
	IsActive       *bool   `json:"isActive"`
}

// ListStudentsParams carries supported list filters.
type ListStudentsParams struct {
	ClassLevel     string `form:"classLevel"`
	AcademicYearID string `form:"academicYearID"`
}

// StudentResponse defines the data returned for a student.
type StudentResponse struct {
	StudentID       string `json:"studentID"`
	AdmissionNumber string `json:"admissionNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ClassLevel      string `json:"classLevel"`
	AcademicYearID  string `json:"academicYearID"`
	IsActive        bool   `json:"isActive"`
}

// ToStudentResponse converts a domain.Student to its response DTO.
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID:       s.StudentID,
		AdmissionNumber: s.AdmissionNumber,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		ClassLevel:      s.ClassLevel,
		AcademicYearID:  s.AcademicYearID,
		IsActive:        s.IsActive,
	}
}

// ToStudentResponses converts a slice of domain students.
func ToStudentResponses(students []domain.Student) []StudentResponse {
	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = ToStudentResponse(&students[i])
	}
	return responses
}
