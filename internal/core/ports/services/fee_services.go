package services

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// FeeSvcFacade manages the fee catalog and per-class fee structures.
type FeeSvcFacade interface {
	CreateFeeItem(ctx context.Context, req dto.CreateFeeItemRequest, userID string) (*domain.FeeItem, error)
	GetFeeItemByID(ctx context.Context, feeItemID string) (*domain.FeeItem, error)
	ListFeeItems(ctx context.Context) ([]domain.FeeItem, error)
	UpdateFeeItem(ctx context.Context, feeItemID string, req dto.UpdateFeeItemRequest, userID string) (*domain.FeeItem, error)
	DeleteFeeItem(ctx context.Context, feeItemID string) error

	CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest, userID string) (*domain.FeeStructure, error)
	GetFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error)
	ListFeeStructures(ctx context.Context, params dto.ListFeeStructuresParams) ([]domain.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, feeStructureID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error)
	DeleteFeeStructure(ctx context.Context, feeStructureID string) error
}
