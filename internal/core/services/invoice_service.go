package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
	"github.com/shulebooks/sba_backend/internal/utils/slug"
)

var (
	// ErrOverpayment is returned when a payment exceeds the invoice's balance
	// due and the request did not set AllowOverpayment.
	ErrOverpayment = fmt.Errorf("%w: payment exceeds invoice balance due", apperrors.ErrValidation)
	// ErrTotalMismatch is returned when a supplied totalAmount disagrees with
	// the sum of the supplied lines.
	ErrTotalMismatch = fmt.Errorf("%w: totalAmount does not match the sum of invoice lines", apperrors.ErrValidation)
	// ErrNoFeeStructures is returned by invoice generation when no fee
	// structures match the student's class for the year/term.
	ErrNoFeeStructures = fmt.Errorf("%w: no fee structures match the student's class", apperrors.ErrValidation)

	// receiptPrefix is the fixed prefix of generated receipt numbers.
	receiptPrefix = "RCT"
	// maxReceiptAttempts bounds the retry loop on receipt number conflicts.
	maxReceiptAttempts = 10
)

// invoiceService manages student billing and payment reconciliation.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	feeRepo     portsrepo.FeeRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, feeRepo portsrepo.FeeRepositoryFacade, studentRepo portsrepo.StudentRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		feeRepo:     feeRepo,
		studentRepo: studentRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice persists an invoice with its lines atomically. TotalAmount is
// derived from the lines when omitted; a supplied total that disagrees with
// supplied lines is rejected.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.studentRepo.FindStudentByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	lines := make([]domain.InvoiceLine, len(req.Lines))
	linesTotal := decimal.Zero
	for i, lineReq := range req.Lines {
		if lineReq.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: invoice line amount must not be negative", apperrors.ErrValidation)
		}
		lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			FeeItemID:   lineReq.FeeItemID,
			Description: lineReq.Description,
			Amount:      lineReq.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		linesTotal = linesTotal.Add(lineReq.Amount)
	}

	total := req.TotalAmount
	if len(lines) > 0 {
		if total.IsZero() {
			total = linesTotal
		} else if !total.Equal(linesTotal) {
			return nil, fmt.Errorf("%w: total is %s, lines sum to %s", ErrTotalMismatch, total.String(), linesTotal.String())
		}
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: totalAmount must not be negative", apperrors.ErrValidation)
	}

	invoice := domain.Invoice{
		InvoiceID:      invoiceID,
		StudentID:      req.StudentID,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		TotalAmount:    total,
		Status:         domain.Unpaid,
		DueDate:        req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoiceID), slog.Int("line_count", len(lines)))
	invoice.Lines = lines
	return &invoice, nil
}

// GenerateInvoice builds invoice lines from the fee structures matching the
// student's class in the given year/term, skipping optional fee items.
func (s *invoiceService) GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	structures, err := s.feeRepo.ListFeeStructures(ctx, dto.ListFeeStructuresParams{
		ClassLevel:     student.ClassLevel,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
	})
	if err != nil {
		logger.Error("Failed to list fee structures for invoice generation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}
	if len(structures) == 0 {
		return nil, fmt.Errorf("%w: class %s", ErrNoFeeStructures, student.ClassLevel)
	}

	feeItemIDs := make([]string, len(structures))
	for i, structure := range structures {
		feeItemIDs[i] = structure.FeeItemID
	}
	feeItems, err := s.feeRepo.FindFeeItemsByIDs(ctx, feeItemIDs)
	if err != nil {
		logger.Error("Failed to fetch fee items for invoice generation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch fee items: %w", err)
	}

	createReq := dto.CreateInvoiceRequest{
		StudentID:      req.StudentID,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		DueDate:        req.DueDate,
	}
	for _, structure := range structures {
		item, found := feeItems[structure.FeeItemID]
		if !found {
			return nil, fmt.Errorf("fee item %s referenced by structure %s was not found", structure.FeeItemID, structure.FeeStructureID)
		}
		if item.Optional {
			continue
		}
		createReq.Lines = append(createReq.Lines, dto.CreateInvoiceLineRequest{
			FeeItemID:   structure.FeeItemID,
			Description: item.Name,
			Amount:      structure.Amount,
		})
	}
	if len(createReq.Lines) == 0 {
		return nil, fmt.Errorf("%w: all matching fee items are optional", ErrNoFeeStructures)
	}

	return s.CreateInvoice(ctx, createReq, userID)
}

// GetInvoiceByID loads the invoice with its lines and payments.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		logger.Error("Failed to fetch invoice lines", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to retrieve invoice lines: %w", apperrors.ErrInternal)
	}
	payments, err := s.invoiceRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		logger.Error("Failed to fetch invoice payments", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to retrieve invoice payments: %w", apperrors.ErrInternal)
	}

	invoice.Lines = lines
	invoice.Payments = payments
	return invoice, nil
}

// ListInvoices retrieves invoices matching the filters.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx, params)
}

// UpdateInvoice updates header fields. Status is derived from payments and not
// settable here.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
		updated = true
	}
	if req.TermID != nil {
		invoice.TermID = *req.TermID
		updated = true
	}
	if !updated {
		return invoice, nil
	}

	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice with its lines and payments.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.invoiceRepo.DeleteInvoice(ctx, invoiceID)
}

// RecordPayment validates the amount against the outstanding balance, derives
// the status transition, and persists both atomically. The receipt number is
// generated here and retried on conflict.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amountPaid must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payments, err := s.invoiceRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		logger.Error("Failed to fetch payments for reconciliation", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to retrieve payments: %w", apperrors.ErrInternal)
	}

	amountPaid := decimal.Zero
	for _, p := range payments {
		amountPaid = amountPaid.Add(p.AmountPaid)
	}
	balanceDue := invoice.TotalAmount.Sub(amountPaid)

	if req.AmountPaid.GreaterThan(balanceDue) && !req.AllowOverpayment {
		return nil, fmt.Errorf("%w: balance due is %s, payment is %s",
			ErrOverpayment, balanceDue.String(), req.AmountPaid.String())
	}

	now := time.Now().UTC()
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	newStatus := domain.DeriveInvoiceStatus(invoice.TotalAmount, amountPaid.Add(req.AmountPaid))

	payment := domain.Payment{
		PaymentID:  uuid.NewString(),
		InvoiceID:  invoiceID,
		StudentID:  invoice.StudentID,
		AmountPaid: req.AmountPaid,
		Method:     req.Method,
		PaidAt:     paidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Receipt numbers come from a timestamp token; a conflict on the unique
	// constraint gets a fresh token rather than a suffixed candidate.
	var saveErr error
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		payment.ReceiptNumber = slug.TimestampToken(receiptPrefix, time.Now().UTC())
		saveErr = s.invoiceRepo.SavePayment(ctx, payment, newStatus)
		if saveErr == nil {
			break
		}
		if !errors.Is(saveErr, apperrors.ErrDuplicate) {
			logger.Error("Failed to save payment", slog.String("error", saveErr.Error()), slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to save payment: %w", saveErr)
		}
	}
	if saveErr != nil {
		return nil, fmt.Errorf("failed to allocate a unique receipt number: %w", saveErr)
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("receipt_number", payment.ReceiptNumber),
		slog.String("new_status", string(newStatus)))
	return &payment, nil
}

// GetPaymentByID retrieves one payment.
func (s *invoiceService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.invoiceRepo.FindPaymentByID(ctx, paymentID)
}

// ListPayments retrieves payments matching the filters.
func (s *invoiceService) ListPayments(ctx context.Context, invoiceID string, studentID string) ([]domain.Payment, error) {
	return s.invoiceRepo.ListPayments(ctx, invoiceID, studentID)
}

// DeletePayment removes a payment; the repository re-derives the parent
// invoice's status in the same transaction.
func (s *invoiceService) DeletePayment(ctx context.Context, paymentID string) error {
	return s.invoiceRepo.DeletePayment(ctx, paymentID)
}
