package repositories

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// FeeRepositoryFacade provides persistence for the fee catalog and the
// per-class fee structures.
type FeeRepositoryFacade interface {
	// InsertFeeItem returns apperrors.ErrDuplicate when the slug exists.
	InsertFeeItem(ctx context.Context, item domain.FeeItem) error
	FindFeeItemByID(ctx context.Context, feeItemID string) (*domain.FeeItem, error)
	FindFeeItemsByIDs(ctx context.Context, feeItemIDs []string) (map[string]domain.FeeItem, error)
	ListFeeItems(ctx context.Context) ([]domain.FeeItem, error)
	UpdateFeeItem(ctx context.Context, item domain.FeeItem) error
	DeleteFeeItem(ctx context.Context, feeItemID string) error

	SaveFeeStructure(ctx context.Context, structure domain.FeeStructure) error
	FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error)
	ListFeeStructures(ctx context.Context, params dto.ListFeeStructuresParams) ([]domain.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, structure domain.FeeStructure) error
	DeleteFeeStructure(ctx context.Context, feeStructureID string) error
}
