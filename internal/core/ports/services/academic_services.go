package services

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// AcademicSvcFacade manages academic years and terms. Year creation assigns a
// unique slug derived from the name, retrying on conflict.
type AcademicSvcFacade interface {
	CreateAcademicYear(ctx context.Context, req dto.CreateAcademicYearRequest, userID string) (*domain.AcademicYear, error)
	GetAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error)
	ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, yearID string, req dto.UpdateAcademicYearRequest, userID string) (*domain.AcademicYear, error)
	DeleteAcademicYear(ctx context.Context, yearID string) error

	CreateTerm(ctx context.Context, req dto.CreateTermRequest, userID string) (*domain.Term, error)
	GetTermByID(ctx context.Context, termID string) (*domain.Term, error)
	ListTerms(ctx context.Context, params dto.ListTermsParams) ([]domain.Term, error)
	UpdateTerm(ctx context.Context, termID string, req dto.UpdateTermRequest, userID string) (*domain.Term, error)
	DeleteTerm(ctx context.Context, termID string) error
}

// StudentSvcFacade manages student records.
type StudentSvcFacade interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, userID string) (*domain.Student, error)
	GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error)
	DeleteStudent(ctx context.Context, studentID string) error
}
