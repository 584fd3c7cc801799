package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from payments against the invoice total, never
// caller-supplied.
type InvoiceStatus string

const (
	Unpaid  InvoiceStatus = "UNPAID"
	Partial InvoiceStatus = "PARTIAL"
	Paid    InvoiceStatus = "PAID"
)

// Invoice bills a student for a term. TotalAmount reconciles with the sum of
// its lines; status transitions UNPAID -> PARTIAL -> PAID as payments arrive.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"` // Primary key (UUID)
	StudentID      string          `json:"studentID"`
	AcademicYearID string          `json:"academicYearID"`
	TermID         string          `json:"termID"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         InvoiceStatus   `json:"status"`
	DueDate        time.Time       `json:"dueDate"`
	Lines          []InvoiceLine   `json:"lines,omitempty"`
	Payments       []Payment       `json:"payments,omitempty"`
	AuditFields
}

// DeriveInvoiceStatus maps the reconciliation figures onto the status ladder.
// Status is a pure function of totalAmount and the payment sum.
func DeriveInvoiceStatus(total, paid decimal.Decimal) InvoiceStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return Unpaid
	case paid.LessThan(total):
		return Partial
	default:
		return Paid
	}
}

// InvoiceLine is one billable component of an invoice, referencing a fee item.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`    // Primary key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices (Not Null)
	FeeItemID   string          `json:"feeItemID"` // FK -> fee_items (Not Null)
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}

// Payment records an amount received against an invoice. ReceiptNumber is
// generated server-side and unique.
type Payment struct {
	PaymentID     string          `json:"paymentID"` // Primary key (UUID)
	InvoiceID     string          `json:"invoiceID"` // FK -> invoices (Not Null)
	StudentID     string          `json:"studentID"` // FK -> students (Not Null)
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Method        string          `json:"method"` // e.g. CASH, BANK, MOBILE
	ReceiptNumber string          `json:"receiptNumber"`
	PaidAt        time.Time       `json:"paidAt"`
	AuditFields
}
