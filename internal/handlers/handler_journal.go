package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journals and their lines.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createJournal godoc
// @Summary Create a journal entry with its lines
// @Description Creates a balanced journal and all its lines atomically
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced or malformed lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create journal")
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry and its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Tags journals
// @Produce  json
// @Param   academicYearID query string false "Filter by academic year"
// @Param   termID query string false "Filter by term"
// @Success 200 {array} dto.JournalResponse
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list journals")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponses(journals))
}

// updateJournal godoc
// @Summary Update a journal's entry-level fields
// @Description Lines are not editable through this endpoint
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal entry and its lines
// @Tags journals
// @Param   journalID path string true "Journal ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	if err := h.journalService.DeleteJournal(c.Request.Context(), journalID); err != nil {
		respondServiceError(c, logger, err, "delete journal")
		return
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// reverseJournal godoc
// @Summary Reverse a posted journal entry
// @Description Creates a mirrored entry and marks the original REVERSED
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse "The reversing entry"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not in POSTED status"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, _ := middleware.GetUserIDFromContext(c)

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "reverse journal")
		return
	}

	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversing_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// updateJournalLine godoc
// @Summary Update a single journal line
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   lineID path string true "Line ID"
// @Param   line body dto.UpdateJournalLineRequest true "Fields to update"
// @Success 200 {object} dto.JournalLineResponse
// @Failure 404 {object} map[string]string "Line not found"
// @Router /journals/{journalID}/lines/{lineID} [put]
func (h *journalHandler) updateJournalLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lineID := c.Param("lineID")

	var req dto.UpdateJournalLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	line, err := h.journalService.UpdateJournalLine(c.Request.Context(), lineID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update journal line")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalLineResponse(line))
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
		journals.PUT("/:journalID/lines/:lineID", h.updateJournalLine)
	}
}
