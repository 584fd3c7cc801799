package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// academicHandler handles HTTP requests for academic years and terms.
type academicHandler struct {
	academicService portssvc.AcademicSvcFacade
}

func newAcademicHandler(academicService portssvc.AcademicSvcFacade) *academicHandler {
	return &academicHandler{academicService: academicService}
}

// createAcademicYear godoc
// @Summary Create an academic year
// @Description The slug is generated from the name; collisions are retried with numeric suffixes
// @Tags academic
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateAcademicYearRequest true "Academic year"
// @Success 201 {object} dto.AcademicYearResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 409 {object} map[string]string "Could not assign a unique slug"
// @Router /academic-years [post]
func (h *academicHandler) createAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	year, err := h.academicService.CreateAcademicYear(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create academic year")
		return
	}

	logger.Info("Academic year created", slog.String("academic_year_id", year.AcademicYearID), slog.String("slug", year.Slug))
	c.JSON(http.StatusCreated, dto.ToAcademicYearResponse(year))
}

// getAcademicYear godoc
// @Summary Get an academic year
// @Tags academic
// @Produce  json
// @Param   yearID path string true "Academic year ID"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} map[string]string "Academic year not found"
// @Router /academic-years/{yearID} [get]
func (h *academicHandler) getAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("yearID")

	year, err := h.academicService.GetAcademicYearByID(c.Request.Context(), yearID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve academic year")
		return
	}

	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}

// listAcademicYears godoc
// @Summary List academic years
// @Tags academic
// @Produce  json
// @Success 200 {array} dto.AcademicYearResponse
// @Router /academic-years [get]
func (h *academicHandler) listAcademicYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.academicService.ListAcademicYears(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list academic years")
		return
	}

	c.JSON(http.StatusOK, dto.ToAcademicYearResponses(years))
}

// updateAcademicYear godoc
// @Summary Update an academic year
// @Description The slug is immutable
// @Tags academic
// @Accept  json
// @Produce  json
// @Param   yearID path string true "Academic year ID"
// @Param   year body dto.UpdateAcademicYearRequest true "Fields to update"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} map[string]string "Academic year not found"
// @Router /academic-years/{yearID} [put]
func (h *academicHandler) updateAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("yearID")

	var req dto.UpdateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	year, err := h.academicService.UpdateAcademicYear(c.Request.Context(), yearID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update academic year")
		return
	}

	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}

// deleteAcademicYear godoc
// @Summary Delete an academic year
// @Tags academic
// @Param   yearID path string true "Academic year ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Academic year not found"
// @Router /academic-years/{yearID} [delete]
func (h *academicHandler) deleteAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("yearID")

	if err := h.academicService.DeleteAcademicYear(c.Request.Context(), yearID); err != nil {
		respondServiceError(c, logger, err, "delete academic year")
		return
	}

	c.Status(http.StatusNoContent)
}

// createTerm godoc
// @Summary Create a term within an academic year
// @Tags academic
// @Accept  json
// @Produce  json
// @Param   term body dto.CreateTermRequest true "Term"
// @Success 201 {object} dto.TermResponse
// @Failure 404 {object} map[string]string "Academic year not found"
// @Router /terms [post]
func (h *academicHandler) createTerm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	term, err := h.academicService.CreateTerm(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create term")
		return
	}

	logger.Info("Term created", slog.String("term_id", term.TermID))
	c.JSON(http.StatusCreated, dto.ToTermResponse(term))
}

// getTerm godoc
// @Summary Get a term
// @Tags academic
// @Produce  json
// @Param   termID path string true "Term ID"
// @Success 200 {object} dto.TermResponse
// @Failure 404 {object} map[string]string "Term not found"
// @Router /terms/{termID} [get]
func (h *academicHandler) getTerm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	termID := c.Param("termID")

	term, err := h.academicService.GetTermByID(c.Request.Context(), termID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve term")
		return
	}

	c.JSON(http.StatusOK, dto.ToTermResponse(term))
}

// listTerms godoc
// @Summary List terms
// @Tags academic
// @Produce  json
// @Param   academicYearID query string false "Filter by academic year"
// @Success 200 {array} dto.TermResponse
// @Router /terms [get]
func (h *academicHandler) listTerms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTermsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	terms, err := h.academicService.ListTerms(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list terms")
		return
	}

	c.JSON(http.StatusOK, dto.ToTermResponses(terms))
}

// updateTerm godoc
// @Summary Update a term
// @Tags academic
// @Accept  json
// @Produce  json
// @Param   termID path string true "Term ID"
// @Param   term body dto.UpdateTermRequest true "Fields to update"
// @Success 200 {object} dto.TermResponse
// @Failure 404 {object} map[string]string "Term not found"
// @Router /terms/{termID} [put]
func (h *academicHandler) updateTerm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	termID := c.Param("termID")

	var req dto.UpdateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	term, err := h.academicService.UpdateTerm(c.Request.Context(), termID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update term")
		return
	}

	c.JSON(http.StatusOK, dto.ToTermResponse(term))
}

// deleteTerm godoc
// @Summary Delete a term
// @Tags academic
// @Param   termID path string true "Term ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Term not found"
// @Router /terms/{termID} [delete]
func (h *academicHandler) deleteTerm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	termID := c.Param("termID")

	if err := h.academicService.DeleteTerm(c.Request.Context(), termID); err != nil {
		respondServiceError(c, logger, err, "delete term")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerAcademicRoutes registers academic year and term routes
func registerAcademicRoutes(group *gin.RouterGroup, academicService portssvc.AcademicSvcFacade) {
	h := newAcademicHandler(academicService)

	years := group.Group("/academic-years")
	{
		years.POST("", h.createAcademicYear)
		years.GET("", h.listAcademicYears)
		years.GET("/:yearID", h.getAcademicYear)
		years.PUT("/:yearID", h.updateAcademicYear)
		years.DELETE("/:yearID", h.deleteAcademicYear)
	}

	terms := group.Group("/terms")
	{
		terms.POST("", h.createTerm)
		terms.GET("", h.listTerms)
		terms.GET("/:termID", h.getTerm)
		terms.PUT("/:termID", h.updateTerm)
		terms.DELETE("/:termID", h.deleteTerm)
	}
}
