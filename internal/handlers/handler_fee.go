package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// feeHandler handles HTTP requests for the fee catalog and fee structures.
type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func newFeeHandler(feeService portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{feeService: feeService}
}

// createFeeItem godoc
// @Summary Create a fee catalog entry
// @Description The slug is generated from the name; collisions are retried with numeric suffixes
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateFeeItemRequest true "Fee item"
// @Success 201 {object} dto.FeeItemResponse
// @Failure 409 {object} map[string]string "Could not assign a unique slug"
// @Router /fee-items [post]
func (h *feeHandler) createFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFeeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.feeService.CreateFeeItem(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create fee item")
		return
	}

	logger.Info("Fee item created", slog.String("fee_item_id", item.FeeItemID), slog.String("slug", item.Slug))
	c.JSON(http.StatusCreated, dto.ToFeeItemResponse(item))
}

// getFeeItem godoc
// @Summary Get a fee item
// @Tags fees
// @Produce  json
// @Param   feeItemID path string true "Fee item ID"
// @Success 200 {object} dto.FeeItemResponse
// @Failure 404 {object} map[string]string "Fee item not found"
// @Router /fee-items/{feeItemID} [get]
func (h *feeHandler) getFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeItemID := c.Param("feeItemID")

	item, err := h.feeService.GetFeeItemByID(c.Request.Context(), feeItemID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve fee item")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponse(item))
}

// listFeeItems godoc
// @Summary List the fee catalog
// @Tags fees
// @Produce  json
// @Success 200 {array} dto.FeeItemResponse
// @Router /fee-items [get]
func (h *feeHandler) listFeeItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.feeService.ListFeeItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list fee items")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponses(items))
}

// updateFeeItem godoc
// @Summary Update a fee item
// @Description The slug is immutable
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   feeItemID path string true "Fee item ID"
// @Param   item body dto.UpdateFeeItemRequest true "Fields to update"
// @Success 200 {object} dto.FeeItemResponse
// @Failure 404 {object} map[string]string "Fee item not found"
// @Router /fee-items/{feeItemID} [put]
func (h *feeHandler) updateFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeItemID := c.Param("feeItemID")

	var req dto.UpdateFeeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.feeService.UpdateFeeItem(c.Request.Context(), feeItemID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update fee item")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponse(item))
}

// deleteFeeItem godoc
// @Summary Delete a fee item
// @Tags fees
// @Param   feeItemID path string true "Fee item ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Fee item not found"
// @Router /fee-items/{feeItemID} [delete]
func (h *feeHandler) deleteFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeItemID := c.Param("feeItemID")

	if err := h.feeService.DeleteFeeItem(c.Request.Context(), feeItemID); err != nil {
		respondServiceError(c, logger, err, "delete fee item")
		return
	}

	c.Status(http.StatusNoContent)
}

// createFeeStructure godoc
// @Summary Bind a fee item to a class level within a year and term
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   structure body dto.CreateFeeStructureRequest true "Fee structure"
// @Success 201 {object} dto.FeeStructureResponse
// @Failure 404 {object} map[string]string "Fee item or term not found"
// @Router /fee-structures [post]
func (h *feeHandler) createFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	structure, err := h.feeService.CreateFeeStructure(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create fee structure")
		return
	}

	logger.Info("Fee structure created", slog.String("fee_structure_id", structure.FeeStructureID))
	c.JSON(http.StatusCreated, dto.ToFeeStructureResponse(structure))
}

// getFeeStructure godoc
// @Summary Get a fee structure
// @Tags fees
// @Produce  json
// @Param   feeStructureID path string true "Fee structure ID"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Router /fee-structures/{feeStructureID} [get]
func (h *feeHandler) getFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeStructureID := c.Param("feeStructureID")

	structure, err := h.feeService.GetFeeStructureByID(c.Request.Context(), feeStructureID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve fee structure")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(structure))
}

// listFeeStructures godoc
// @Summary List fee structures
// @Tags fees
// @Produce  json
// @Param   feeItemID query string false "Filter by fee item"
// @Param   classLevel query string false "Filter by class level"
// @Param   academicYearID query string false "Filter by academic year"
// @Param   termID query string false "Filter by term"
// @Success 200 {array} dto.FeeStructureResponse
// @Router /fee-structures [get]
func (h *feeHandler) listFeeStructures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFeeStructuresParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	structures, err := h.feeService.ListFeeStructures(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list fee structures")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeStructureResponses(structures))
}

// updateFeeStructure godoc
// @Summary Update a fee structure
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   feeStructureID path string true "Fee structure ID"
// @Param   structure body dto.UpdateFeeStructureRequest true "Fields to update"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Router /fee-structures/{feeStructureID} [put]
func (h *feeHandler) updateFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeStructureID := c.Param("feeStructureID")

	var req dto.UpdateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	structure, err := h.feeService.UpdateFeeStructure(c.Request.Context(), feeStructureID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update fee structure")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(structure))
}

// deleteFeeStructure godoc
// @Summary Delete a fee structure
// @Tags fees
// @Param   feeStructureID path string true "Fee structure ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Router /fee-structures/{feeStructureID} [delete]
func (h *feeHandler) deleteFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeStructureID := c.Param("feeStructureID")

	if err := h.feeService.DeleteFeeStructure(c.Request.Context(), feeStructureID); err != nil {
		respondServiceError(c, logger, err, "delete fee structure")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerFeeRoutes registers fee item and fee structure routes
func registerFeeRoutes(group *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)

	items := group.Group("/fee-items")
	{
		items.POST("", h.createFeeItem)
		items.GET("", h.listFeeItems)
		items.GET("/:feeItemID", h.getFeeItem)
		items.PUT("/:feeItemID", h.updateFeeItem)
		items.DELETE("/:feeItemID", h.deleteFeeItem)
	}

	structures := group.Group("/fee-structures")
	{
		structures.POST("", h.createFeeStructure)
		structures.GET("", h.listFeeStructures)
		structures.GET("/:feeStructureID", h.getFeeStructure)
		structures.PUT("/:feeStructureID", h.updateFeeStructure)
		structures.DELETE("/:feeStructureID", h.deleteFeeStructure)
	}
}
