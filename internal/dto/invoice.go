package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/core/domain"
)

// CreateInvoiceLineRequest is one billable component of an invoice submission.
type CreateInvoiceLineRequest struct {
	FeeItemID   string          `json:"feeItemID" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateInvoiceRequest defines the payload for creating an invoice with its
// lines. TotalAmount may be omitted when lines are supplied; it is then
// derived from them. A supplied total that disagrees with the lines is
// rejected.
type CreateInvoiceRequest struct {
	StudentID      string                     `json:"studentID" binding:"required"`
	AcademicYearID string                     `json:"academicYearID" binding:"required"`
	TermID         string                     `json:"termID" binding:"required"`
	TotalAmount    decimal.Decimal            `json:"totalAmount"`
	DueDate        time.Time                  `json:"dueDate"`
	Lines          []CreateInvoiceLineRequest `json:"lines"`
}

// GenerateInvoiceRequest asks for an invoice built from the fee structures
// matching the student's class in a year/term.
type GenerateInvoiceRequest struct {
	StudentID      string    `json:"studentID" binding:"required"`
	AcademicYearID string    `json:"academicYearID" binding:"required"`
	TermID         string    `json:"termID" binding:"required"`
	DueDate        time.Time `json:"dueDate"`
}

// UpdateInvoiceRequest allows partial update of header fields. Status is
// derived from payments and cannot be set by callers.
type UpdateInvoiceRequest struct {
	DueDate *time.Time `json:"dueDate"`
	TermID  *string    `json:"termID"`
}

// ListInvoicesParams carries the supported list filters.
type ListInvoicesParams struct {
	StudentID      string `form:"studentID"`
	AcademicYearID string `form:"academicYearID"`
	TermID         string `form:"termID"`
	Status         string `form:"status"`
}

// RecordPaymentRequest defines the payload for recording a payment against an
// invoice. AllowOverpayment must be set explicitly to accept an amount above
// the outstanding balance.
type RecordPaymentRequest struct {
	AmountPaid       decimal.Decimal `json:"amountPaid" binding:"required"`
	Method           string          `json:"method" binding:"required"`
	PaidAt           time.Time       `json:"paidAt"`
	AllowOverpayment bool            `json:"allowOverpayment"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	FeeItemID   string          `json:"feeItemID"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	StudentID     string          `json:"studentID"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Method        string          `json:"method"`
	ReceiptNumber string          `json:"receiptNumber"`
	PaidAt        time.Time       `json:"paidAt"`
}

// InvoiceResponse defines the data returned for an invoice, including the
// reconciliation figures derived from its payments.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	StudentID      string                `json:"studentID"`
	AcademicYearID string                `json:"academicYearID"`
	TermID         string                `json:"termID"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	AmountPaid     decimal.Decimal       `json:"amountPaid"`
	BalanceDue     decimal.Decimal       `json:"balanceDue"`
	Status         string                `json:"status"`
	DueDate        time.Time             `json:"dueDate"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
	Payments       []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		InvoiceID:     p.InvoiceID,
		StudentID:     p.StudentID,
		AmountPaid:    p.AmountPaid,
		Method:        p.Method,
		ReceiptNumber: p.ReceiptNumber,
		PaidAt:        p.PaidAt,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ToInvoiceResponse converts a domain.Invoice with its loaded lines and
// payments, computing amountPaid and balanceDue.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	amountPaid := decimal.Zero
	for _, p := range inv.Payments {
		amountPaid = amountPaid.Add(p.AmountPaid)
	}
	resp := InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		StudentID:      inv.StudentID,
		AcademicYearID: inv.AcademicYearID,
		TermID:         inv.TermID,
		TotalAmount:    inv.TotalAmount,
		AmountPaid:     amountPaid,
		BalanceDue:     inv.TotalAmount.Sub(amountPaid),
		Status:         string(inv.Status),
		DueDate:        inv.DueDate,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
	if len(inv.Lines) > 0 {
		resp.Lines = make([]InvoiceLineResponse, len(inv.Lines))
		for i, l := range inv.Lines {
			resp.Lines[i] = InvoiceLineResponse{
				LineID:      l.LineID,
				InvoiceID:   l.InvoiceID,
				FeeItemID:   l.FeeItemID,
				Description: l.Description,
				Amount:      l.Amount,
			}
		}
	}
	if len(inv.Payments) > 0 {
		resp.Payments = ToPaymentResponses(inv.Payments)
	}
	return resp
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
