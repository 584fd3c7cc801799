package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests for invoices and payments.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: invoiceService}
}

// createInvoice godoc
// @Summary Create an invoice with its lines
// @Description TotalAmount may be omitted when lines are supplied; a supplied total that disagrees with the lines is rejected
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice and lines"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Total disagrees with lines"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// generateInvoice godoc
// @Summary Generate an invoice from fee structures
// @Description Builds the invoice lines from the fee structures matching the student's class in the year/term
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateInvoiceRequest true "Generation scope"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "No fee structures match"
// @Router /invoices/generate [post]
func (h *invoiceHandler) generateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	invoice, err := h.invoiceService.GenerateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "generate invoice")
		return
	}

	logger.Info("Invoice generated", slog.String("invoice_id", invoice.InvoiceID), slog.String("student_id", invoice.StudentID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice with lines, payments and reconciliation figures
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   studentID query string false "Filter by student"
// @Param   academicYearID query string false "Filter by academic year"
// @Param   termID query string false "Filter by term"
// @Param   status query string false "Filter by status (UNPAID, PARTIAL, PAID)"
// @Success 200 {array} dto.InvoiceResponse
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// updateInvoice godoc
// @Summary Update an invoice's header fields
// @Description Status is derived from payments and cannot be set here
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice with its lines and payments
// @Tags invoices
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		respondServiceError(c, logger, err, "delete invoice")
		return
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against an invoice
// @Description Rejects amounts above the outstanding balance unless allowOverpayment is set; the receipt number is generated server-side
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Amount exceeds balance due"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	payment, err := h.invoiceService.RecordPayment(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("receipt_number", payment.ReceiptNumber))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listInvoicePayments godoc
// @Summary List payments against one invoice
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Router /invoices/{invoiceID}/payments [get]
func (h *invoiceHandler) listInvoicePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), invoiceID, "")
	if err != nil {
		respondServiceError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Param   invoiceID query string false "Filter by invoice"
// @Param   studentID query string false "Filter by student"
// @Success 200 {array} dto.PaymentResponse
// @Router /payments [get]
func (h *invoiceHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), c.Query("invoiceID"), c.Query("studentID"))
	if err != nil {
		respondServiceError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID} [get]
func (h *invoiceHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.invoiceService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a payment
// @Description The parent invoice's status is re-derived from the remaining payments
// @Tags payments
// @Param   paymentID path string true "Payment ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID} [delete]
func (h *invoiceHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	if err := h.invoiceService.DeletePayment(c.Request.Context(), paymentID); err != nil {
		respondServiceError(c, logger, err, "delete payment")
		return
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}

// registerInvoiceRoutes registers invoice and payment specific routes
func registerInvoiceRoutes(group *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := group.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.POST("/generate", h.generateInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.POST("/:invoiceID/payments", h.recordPayment)
		invoices.GET("/:invoiceID/payments", h.listInvoicePayments)
	}

	payments := group.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.DELETE("/:paymentID", h.deletePayment)
	}
}
