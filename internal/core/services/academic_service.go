package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
	"github.com/shulebooks/sba_backend/internal/utils/slug"
)

// maxSlugAttempts bounds the suffix retry loop when assigning a unique slug.
const maxSlugAttempts = 10

// academicService manages academic years and terms.
type academicService struct {
	academicRepo portsrepo.AcademicRepositoryFacade
}

// NewAcademicService creates a new AcademicService.
func NewAcademicService(academicRepo portsrepo.AcademicRepositoryFacade) portssvc.AcademicSvcFacade {
	return &academicService{academicRepo: academicRepo}
}

var _ portssvc.AcademicSvcFacade = (*academicService)(nil)

// CreateAcademicYear creates a year with a slug derived from the name.
// Uniqueness lives on the slug's unique constraint: the insert is attempted
// and on conflict retried with "-1", "-2", ... suffixes, bounded at
// maxSlugAttempts. There is no read-then-write probe, so two concurrent
// creates with the same name cannot both win the same slug.
func (s *academicService) CreateAcademicYear(ctx context.Context, req dto.CreateAcademicYearRequest, userID string) (*domain.AcademicYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	year := domain.AcademicYear{
		AcademicYearID: uuid.NewString(),
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsCurrent:      req.IsCurrent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	base := slug.Make(req.Name)
	if base == "" {
		return nil, fmt.Errorf("%w: name yields an empty slug", apperrors.ErrValidation)
	}

	var insertErr error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		year.Slug = slug.WithSuffix(base, attempt)
		insertErr = s.academicRepo.InsertAcademicYear(ctx, year)
		if insertErr == nil {
			break
		}
		if !errors.Is(insertErr, apperrors.ErrDuplicate) {
			logger.Error("Failed to insert academic year", slog.String("error", insertErr.Error()))
			return nil, fmt.Errorf("failed to save academic year: %w", insertErr)
		}
		logger.Debug("Slug taken, retrying with suffix", slog.String("slug", year.Slug))
	}
	if insertErr != nil {
		return nil, fmt.Errorf("%w: could not assign a unique slug for %q after %d attempts",
			apperrors.ErrDuplicate, base, maxSlugAttempts)
	}

	logger.Info("Academic year created", slog.String("academic_year_id", year.AcademicYearID), slog.String("slug", year.Slug))
	return &year, nil
}

// GetAcademicYearByID retrieves one academic year.
func (s *academicService) GetAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error) {
	return s.academicRepo.FindAcademicYearByID(ctx, yearID)
}

// ListAcademicYears retrieves all academic years.
func (s *academicService) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	return s.academicRepo.ListAcademicYears(ctx)
}

// UpdateAcademicYear updates year fields. The slug is immutable.
func (s *academicService) UpdateAcademicYear(ctx context.Context, yearID string, req dto.UpdateAcademicYearRequest, userID string) (*domain.AcademicYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.academicRepo.FindAcademicYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		year.Name = *req.Name
	}
	if req.StartDate != nil {
		year.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		year.EndDate = *req.EndDate
	}
	if req.IsCurrent != nil {
		year.IsCurrent = *req.IsCurrent
	}
	if !year.EndDate.After(year.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperrors.ErrValidation)
	}

	year.LastUpdatedAt = time.Now().UTC()
	year.LastUpdatedBy = userID

	if err := s.academicRepo.UpdateAcademicYear(ctx, *year); err != nil {
		logger.Error("Failed to update academic year", slog.String("error", err.Error()), slog.String("academic_year_id", yearID))
		return nil, fmt.Errorf("failed to update academic year: %w", err)
	}
	return year, nil
}

// DeleteAcademicYear removes an academic year.
func (s *academicService) DeleteAcademicYear(ctx context.Context, yearID string) error {
	return s.academicRepo.DeleteAcademicYear(ctx, yearID)
}

// CreateTerm creates a term within an existing year.
func (s *academicService) CreateTerm(ctx context.Context, req dto.CreateTermRequest, userID string) (*domain.Term, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.academicRepo.FindAcademicYearByID(ctx, req.AcademicYearID); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	term := domain.Term{
		TermID:         uuid.NewString(),
		AcademicYearID: req.AcademicYearID,
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.academicRepo.SaveTerm(ctx, term); err != nil {
		logger.Error("Failed to save term", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save term: %w", err)
	}
	return &term, nil
}

// GetTermByID retrieves one term.
func (s *academicService) GetTermByID(ctx context.Context, termID string) (*domain.Term, error) {
	return s.academicRepo.FindTermByID(ctx, termID)
}

// ListTerms retrieves terms, optionally filtered by academic year.
func (s *academicService) ListTerms(ctx context.Context, params dto.ListTermsParams) ([]domain.Term, error) {
	return s.academicRepo.ListTerms(ctx, params.AcademicYearID)
}

// UpdateTerm updates term fields.
func (s *academicService) UpdateTerm(ctx context.Context, termID string, req dto.UpdateTermRequest, userID string) (*domain.Term, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	term, err := s.academicRepo.FindTermByID(ctx, termID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		term.Name = *req.Name
	}
	if req.StartDate != nil {
		term.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		term.EndDate = *req.EndDate
	}
	if !term.EndDate.After(term.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperrors.ErrValidation)
	}

	term.LastUpdatedAt = time.Now().UTC()
	term.LastUpdatedBy = userID

	if err := s.academicRepo.UpdateTerm(ctx, *term); err != nil {
		logger.Error("Failed to update term", slog.String("error", err.Error()), slog.String("term_id", termID))
		return nil, fmt.Errorf("failed to update term: %w", err)
	}
	return term, nil
}

// DeleteTerm removes a term.
func (s *academicService) DeleteTerm(ctx context.Context, termID string) error {
	return s.academicRepo.DeleteTerm(ctx, termID)
}
