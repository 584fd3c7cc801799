package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	"github.com/shulebooks/sba_backend/internal/dto"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and payment data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts the invoice and all its lines within one database
// transaction. On any failure the transaction rolls back and nothing persists.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	invoiceQuery := `
		INSERT INTO invoices (invoice_id, student_id, academic_year_id, term_id, total_amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		invoice.InvoiceID,
		invoice.StudentID,
		invoice.AcademicYearID,
		invoice.TermID,
		invoice.TotalAmount,
		invoice.Status,
		invoice.DueDate,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice %s: %w", invoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, fee_item_id, description, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.InvoiceID,
			line.FeeItemID,
			line.Description,
			line.Amount,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for invoice %s: %w", invoice.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

const invoiceColumns = `invoice_id, student_id, academic_year_id, term_id, total_amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.StudentID,
		&inv.AcademicYearID,
		&inv.TermID,
		&inv.TotalAmount,
		&inv.Status,
		&inv.DueDate,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

// FindInvoiceByID retrieves an invoice by its ID, without lines or payments.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return &inv, nil
}

// FindLinesByInvoiceID retrieves the lines of one invoice.
func (r *PgxInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT line_id, invoice_id, fee_item_id, description, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lines for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var line domain.InvoiceLine
		if err := rows.Scan(
			&line.LineID,
			&line.InvoiceID,
			&line.FeeItemID,
			&line.Description,
			&line.Amount,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return lines, nil
}

const paymentColumns = `payment_id, invoice_id, student_id, amount_paid, method, receipt_number, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.InvoiceID,
		&p.StudentID,
		&p.AmountPaid,
		&p.Method,
		&p.ReceiptNumber,
		&p.PaidAt,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// FindPaymentsByInvoiceID retrieves all payments against one invoice.
func (r *PgxInvoiceRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY paid_at;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// ListInvoices retrieves invoices matching the filters, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR student_id = $1)
		  AND ($2 = '' OR academic_year_id = $2)
		  AND ($3 = '' OR term_id = $3)
		  AND ($4 = '' OR status = $4)
		ORDER BY due_date DESC, invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, params.StudentID, params.AcademicYearID, params.TermID, params.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

const updateInvoiceQuery = `
	UPDATE invoices
	SET total_amount = $2, status = $3, due_date = $4, term_id = $5, last_updated_at = $6, last_updated_by = $7
	WHERE invoice_id = $1;
`

// UpdateInvoice updates an invoice's entry-level fields.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tag, err := r.Pool.Exec(ctx, updateInvoiceQuery,
		invoice.InvoiceID,
		invoice.TotalAmount,
		invoice.Status,
		invoice.DueDate,
		invoice.TermID,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes the invoice, its lines and its payments in one transaction.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete payments for invoice %s: %w", invoiceID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete lines for invoice %s: %w", invoiceID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SavePayment inserts the payment and moves the invoice to newStatus in one
// transaction. A unique violation on the receipt number comes back as
// apperrors.ErrDuplicate so the service can retry with a fresh token.
func (r *PgxInvoiceRepository) SavePayment(ctx context.Context, payment domain.Payment, newStatus domain.InvoiceStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	paymentQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		payment.PaymentID,
		payment.InvoiceID,
		payment.StudentID,
		payment.AmountPaid,
		payment.Method,
		payment.ReceiptNumber,
		payment.PaidAt,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt number %s", apperrors.ErrDuplicate, payment.ReceiptNumber)
		}
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	statusQuery := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, statusQuery, payment.InvoiceID, newStatus, payment.LastUpdatedAt, payment.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for invoice %s: %w", payment.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindPaymentByID retrieves one payment.
func (r *PgxInvoiceRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	p, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	return &p, nil
}

// ListPayments retrieves payments matching the filters, newest first.
func (r *PgxInvoiceRepository) ListPayments(ctx context.Context, invoiceID string, studentID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE ($1 = '' OR invoice_id = $1)
		  AND ($2 = '' OR student_id = $2)
		ORDER BY paid_at DESC, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// DeletePayment removes the payment and re-derives the parent invoice's
// status from the remaining payments, all in one transaction.
func (r *PgxInvoiceRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var invoiceID string
	err = tx.QueryRow(ctx, `DELETE FROM payments WHERE payment_id = $1 RETURNING invoice_id;`, paymentID).Scan(&invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}

	var total decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT total_amount FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID).Scan(&total)
	if err != nil {
		return fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}

	var paid decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE invoice_id = $1;`, invoiceID).Scan(&paid)
	if err != nil {
		return fmt.Errorf("failed to total payments for invoice %s: %w", invoiceID, err)
	}

	newStatus := domain.DeriveInvoiceStatus(total, paid)
	if _, err := tx.Exec(ctx, `UPDATE invoices SET status = $2 WHERE invoice_id = $1;`, invoiceID, newStatus); err != nil {
		return fmt.Errorf("failed to update status for invoice %s: %w", invoiceID, err)
	}

	return r.Commit(ctx, tx)
}
