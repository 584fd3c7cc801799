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

// feeService manages the fee catalog and per-class fee structures.
type feeService struct {
	feeRepo      portsrepo.FeeRepositoryFacade
	academicRepo portsrepo.AcademicRepositoryFacade
}

// NewFeeService creates a new FeeService.
func NewFeeService(feeRepo portsrepo.FeeRepositoryFacade, academicRepo portsrepo.AcademicRepositoryFacade) portssvc.FeeSvcFacade {
	return &feeService{feeRepo: feeRepo, academicRepo: academicRepo}
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

// CreateFeeItem adds a catalog entry with a slug derived from the name,
// retried with numeric suffixes when the slug is already taken.
func (s *feeService) CreateFeeItem(ctx context.Context, req dto.CreateFeeItemRequest, userID string) (*domain.FeeItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultAmount.IsNegative() {
		return nil, fmt.Errorf("%w: defaultAmount cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.FeeItem{
		FeeItemID:     uuid.NewString(),
		Name:          req.Name,
		DefaultAmount: req.DefaultAmount,
		Optional:      req.Optional,
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
		item.Slug = slug.WithSuffix(base, attempt)
		insertErr = s.feeRepo.InsertFeeItem(ctx, item)
		if insertErr == nil {
			break
		}
		if !errors.Is(insertErr, apperrors.ErrDuplicate) {
			logger.Error("Failed to insert fee item", slog.String("error", insertErr.Error()))
			return nil, fmt.Errorf("failed to save fee item: %w", insertErr)
		}
		logger.Debug("Slug taken, retrying with suffix", slog.String("slug", item.Slug))
	}
	if insertErr != nil {
		return nil, fmt.Errorf("%w: could not assign a unique slug for %q after %d attempts",
			apperrors.ErrDuplicate, base, maxSlugAttempts)
	}

	logger.Info("Fee item created", slog.String("fee_item_id", item.FeeItemID), slog.String("slug", item.Slug))
	return &item, nil
}

// GetFeeItemByID retrieves one fee item.
func (s *feeService) GetFeeItemByID(ctx context.Context, feeItemID string) (*domain.FeeItem, error) {
	return s.feeRepo.FindFeeItemByID(ctx, feeItemID)
}

// ListFeeItems retrieves the whole catalog.
func (s *feeService) ListFeeItems(ctx context.Context) ([]domain.FeeItem, error) {
	return s.feeRepo.ListFeeItems(ctx)
}

// UpdateFeeItem updates name, amount or the optional flag. The slug is fixed
// at creation and does not follow name changes.
func (s *feeService) UpdateFeeItem(ctx context.Context, feeItemID string, req dto.UpdateFeeItemRequest, userID string) (*domain.FeeItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.feeRepo.FindFeeItemByID(ctx, feeItemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.DefaultAmount != nil {
		if req.DefaultAmount.IsNegative() {
			return nil, fmt.Errorf("%w: defaultAmount cannot be negative", apperrors.ErrValidation)
		}
		item.DefaultAmount = *req.DefaultAmount
	}
	if req.Optional != nil {
		item.Optional = *req.Optional
	}

	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = userID

	if err := s.feeRepo.UpdateFeeItem(ctx, *item); err != nil {
		logger.Error("Failed to update fee item", slog.String("error", err.Error()), slog.String("fee_item_id", feeItemID))
		return nil, fmt.Errorf("failed to update fee item: %w", err)
	}
	return item, nil
}

// DeleteFeeItem removes a fee item from the catalog.
func (s *feeService) DeleteFeeItem(ctx context.Context, feeItemID string) error {
	return s.feeRepo.DeleteFeeItem(ctx, feeItemID)
}

// CreateFeeStructure binds a fee item to a class level within a year and term.
func (s *feeService) CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest, userID string) (*domain.FeeStructure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	if _, err := s.feeRepo.FindFeeItemByID(ctx, req.FeeItemID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fee item %s", apperrors.ErrNotFound, req.FeeItemID)
		}
		return nil, err
	}
	if _, err := s.academicRepo.FindTermByID(ctx, req.TermID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: term %s", apperrors.ErrNotFound, req.TermID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	structure := domain.FeeStructure{
		FeeStructureID: uuid.NewString(),
		FeeItemID:      req.FeeItemID,
		ClassLevel:     req.ClassLevel,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		Amount:         req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.feeRepo.SaveFeeStructure(ctx, structure); err != nil {
		logger.Error("Failed to save fee structure", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fee structure: %w", err)
	}

	logger.Info("Fee structure created", slog.String("fee_structure_id", structure.FeeStructureID))
	return &structure, nil
}

// GetFeeStructureByID retrieves one fee structure.
func (s *feeService) GetFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error) {
	return s.feeRepo.FindFeeStructureByID(ctx, feeStructureID)
}

// ListFeeStructures retrieves fee structures matching the filters.
func (s *feeService) ListFeeStructures(ctx context.Context, params dto.ListFeeStructuresParams) ([]domain.FeeStructure, error) {
	return s.feeRepo.ListFeeStructures(ctx, params)
}

// UpdateFeeStructure updates the class level or the amount.
func (s *feeService) UpdateFeeStructure(ctx context.Context, feeStructureID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	structure, err := s.feeRepo.FindFeeStructureByID(ctx, feeStructureID)
	if err != nil {
		return nil, err
	}

	if req.ClassLevel != nil {
		structure.ClassLevel = *req.ClassLevel
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		structure.Amount = *req.Amount
	}

	structure.LastUpdatedAt = time.Now().UTC()
	structure.LastUpdatedBy = userID

	if err := s.feeRepo.UpdateFeeStructure(ctx, *structure); err != nil {
		logger.Error("Failed to update fee structure", slog.String("error", err.Error()), slog.String("fee_structure_id", feeStructureID))
		return nil, fmt.Errorf("failed to update fee structure: %w", err)
	}
	return structure, nil
}

// DeleteFeeStructure removes a fee structure.
func (s *feeService) DeleteFeeStructure(ctx context.Context, feeStructureID string) error {
	return s.feeRepo.DeleteFeeStructure(ctx, feeStructureID)
}
