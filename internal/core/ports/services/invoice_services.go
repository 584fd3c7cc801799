package services

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// InvoiceSvcFacade manages student billing and payment reconciliation.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	// GenerateInvoice builds the invoice lines from the fee structures matching
	// the student's class in the given year/term.
	GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest, userID string) (*domain.Invoice, error)
	// GetInvoiceByID loads the invoice with its lines and payments; the derived
	// reconciliation figures come from the DTO mapping.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// RecordPayment rejects amounts above the outstanding balance unless the
	// request sets AllowOverpayment, then persists the payment and the derived
	// status transition atomically.
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, invoiceID string, studentID string) ([]domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}
