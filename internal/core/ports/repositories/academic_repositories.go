package repositories

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// AcademicRepositoryFacade provides persistence for academic years and terms.
// InsertAcademicYear returns apperrors.ErrDuplicate when the slug's unique
// constraint fires; the service retries with a suffixed candidate.
type AcademicRepositoryFacade interface {
	InsertAcademicYear(ctx context.Context, year domain.AcademicYear) error
	FindAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error)
	ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, year domain.AcademicYear) error
	DeleteAcademicYear(ctx context.Context, yearID string) error

	SaveTerm(ctx context.Context, term domain.Term) error
	FindTermByID(ctx context.Context, termID string) (*domain.Term, error)
	ListTerms(ctx context.Context, academicYearID string) ([]domain.Term, error)
	UpdateTerm(ctx context.Context, term domain.Term) error
	DeleteTerm(ctx context.Context, termID string) error
}
