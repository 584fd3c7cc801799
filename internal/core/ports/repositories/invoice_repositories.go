package repositories

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// InvoiceRepositoryFacade provides persistence for invoices, their lines and
// payments.
type InvoiceRepositoryFacade interface {
	// SaveInvoice persists the invoice and all its lines in one database
	// transaction; on failure nothing is inserted.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)
	FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	// DeleteInvoice removes the invoice, its lines and its payments in one
	// transaction.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// SavePayment inserts the payment and moves the invoice to newStatus in one
	// transaction. Returns apperrors.ErrDuplicate when the receipt number's
	// unique constraint fires.
	SavePayment(ctx context.Context, payment domain.Payment, newStatus domain.InvoiceStatus) error
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, invoiceID string, studentID string) ([]domain.Payment, error)
	// DeletePayment removes the payment and re-derives the parent invoice's
	// status from the remaining payments, in one transaction.
	DeletePayment(ctx context.Context, paymentID string) error
}
