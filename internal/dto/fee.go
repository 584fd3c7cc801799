package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateFeeItemRequest defines the payload for creating a fee catalog entry.
type CreateFeeItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	DefaultAmount decimal.Decimal `json:"defaultAmount" binding:"required"`
	Optional      bool            `json:"optional"`
}

// UpdateFeeItemRequest allows partial update of a fee item.
type UpdateFeeItemRequest struct {
	Name          *string          `json:"name"`
	DefaultAmount *decimal.Decimal `json:"defaultAmount"`
	Optional      *bool            `json:"optional"`
}

// CreateFeeStructureRequest binds a fee item to a class/year/term with an
// overriding amount.
type CreateFeeStructureRequest struct {
	FeeItemID      string          `json:"feeItemID" binding:"required"`
	ClassLevel     string          `json:"classLevel" binding:"required"`
	AcademicYearID string          `json:"academicYearID" binding:"required"`
	TermID         string          `json:"termID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateFeeStructureRequest allows partial update of a fee structure.
type UpdateFeeStructureRequest struct {
	ClassLevel *string          `json:"classLevel"`
	Amount     *decimal.Decimal `json:"amount"`
}

// ListFeeStructuresParams carries supported list filters.
type ListFeeStructuresParams struct {
	FeeItemID      string `form:"feeItemID"`
	ClassLevel     string `form:"classLevel"`
	AcademicYearID string `form:"academicYearID"`
	TermID         string `form:"termID"`
}

// FeeItemResponse defines the data returned for a fee item.
type FeeItemResponse struct {
	FeeItemID     string          `json:"feeItemID"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	DefaultAmount decimal.Decimal `json:"defaultAmount"`
	Optional      bool            `json:"optional"`
}

// FeeStructureResponse defines the data returned for a fee structure.
type FeeStructureResponse struct {
	FeeStructureID string          `json:"feeStructureID"`
	FeeItemID      string          `json:"feeItemID"`
	ClassLevel     string          `json:"classLevel"`
	AcademicYearID string          `json:"academicYearID"`
	TermID         string          `json:"termID"`
	Amount         decimal.Decimal `json:"amount"`
}

// ToFeeItemResponse converts a domain.FeeItem to its response DTO.
func ToFeeItemResponse(f *domain.FeeItem) FeeItemResponse {
	return FeeItemResponse{
		FeeItemID:     f.FeeItemID,
		Slug:          f.Slug,
		Name:          f.Name,
		DefaultAmount: f.DefaultAmount,
		Optional:      f.Optional,
	}
}

// ToFeeItemResponses converts a slice of domain fee items.
func ToFeeItemResponses(items []domain.FeeItem) []FeeItemResponse {
	responses := make([]FeeItemResponse, len(items))
	for i := range items {
		responses[i] = ToFeeItemResponse(&items[i])
	}
	return responses
}

// ToFeeStructureResponse converts a domain.FeeStructure to its response DTO.
func ToFeeStructureResponse(f *domain.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID: f.FeeStructureID,
		FeeItemID:      f.FeeItemID,
		ClassLevel:     f.ClassLevel,
		AcademicYearID: f.AcademicYearID,
		TermID:         f.TermID,
		Amount:         f.Amount,
	}
}

// ToFeeStructureResponses converts a slice of domain fee structures.
func ToFeeStructureResponses(structures []domain.FeeStructure) []FeeStructureResponse {
	responses := make([]FeeStructureResponse, len(structures))
	for i := range structures {
		responses[i] = ToFeeStructureResponse(&structures[i])
	}
	return responses
}
