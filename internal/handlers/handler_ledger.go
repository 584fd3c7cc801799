package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// ledgerHandler serves the read-only ledger projection.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// getLedger godoc
// @Summary Get the ledger projection
// @Description Journal lines with running balances, newest first, for one account or all accounts
// @Tags ledger
// @Produce  json
// @Param   accountID query string false "Filter by account"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 500 {object} map[string]string "Failed to compute ledger"
// @Router /ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	entries, err := h.ledgerService.GetLedger(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "compute ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// registerLedgerRoutes registers the ledger projection route
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	group.GET("/ledger", h.getLedger)
}
