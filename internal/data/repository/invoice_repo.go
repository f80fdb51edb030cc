package repository

import (
	"context"
	"fmt"

	"tasktakr/internal/data/entity"
	"tasktakr/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Invoice, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Invoice, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)

	// NextSequence yields the next position in the invoice-number series.
	// The unique index on invoice_number backstops concurrent generators.
	NextSequence(ctx context.Context) (int64, error)
}

type invoiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInvoiceRepository(db database.PgxIface, log *zap.Logger) InvoiceRepository {
	return &invoiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "invoice")),
	}
}

const invoiceColumns = `id, booking_id, customer_id, provider_id, invoice_number, service_title, subtotal, cgst, sgst, total, status, method, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.BookingID,
		&inv.CustomerID,
		&inv.ProviderID,
		&inv.InvoiceNumber,
		&inv.ServiceTitle,
		&inv.Subtotal,
		&inv.CGST,
		&inv.SGST,
		&inv.Total,
		&inv.Status,
		&inv.Method,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, booking_id, customer_id, provider_id, invoice_number, service_title, subtotal, cgst, sgst, total, status, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		invoice.ID,
		invoice.BookingID,
		invoice.CustomerID,
		invoice.ProviderID,
		invoice.InvoiceNumber,
		invoice.ServiceTitle,
		invoice.Subtotal,
		invoice.CGST,
		invoice.SGST,
		invoice.Total,
		invoice.Status,
		invoice.Method,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create invoice",
			zap.Error(err),
			zap.String("booking_id", invoice.BookingID.String()),
			zap.String("invoice_number", invoice.InvoiceNumber),
		)
		return fmt.Errorf("create invoice for booking %s: %w", invoice.BookingID.String(), err)
	}

	return nil
}

func (r *invoiceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = $1`

	invoice, err := scanInvoice(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		r.log.Error("Failed to find invoice by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find invoice for booking %s: %w", bookingID.String(), err)
	}

	return invoice, nil
}

func (r *invoiceRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Invoice, error) {
	return r.list(ctx, `customer_id`, customerID, limit, offset)
}

func (r *invoiceRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return r.count(ctx, `customer_id`, customerID)
}

func (r *invoiceRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Invoice, error) {
	return r.list(ctx, `provider_id`, providerID, limit, offset)
}

func (r *invoiceRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return r.count(ctx, `provider_id`, providerID)
}

func (r *invoiceRepository) list(ctx context.Context, column string, id uuid.UUID, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, id, limit, offset)
	if err != nil {
		r.log.Error("Failed to find invoices",
			zap.Error(err),
			zap.String(column, id.String()),
		)
		return nil, fmt.Errorf("find invoices by %s %s: %w", column, id.String(), err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			r.log.Error("Failed to scan invoice row", zap.Error(err))
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

func (r *invoiceRepository) count(ctx context.Context, column string, id uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE ` + column + ` = $1`

	var total int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&total); err != nil {
		r.log.Error("Failed to count invoices",
			zap.Error(err),
			zap.String(column, id.String()),
		)
		return 0, fmt.Errorf("count invoices by %s %s: %w", column, id.String(), err)
	}

	return total, nil
}

func (r *invoiceRepository) NextSequence(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) + 1 FROM invoices`

	var next int64
	if err := r.db.QueryRow(ctx, query).Scan(&next); err != nil {
		r.log.Error("Failed to read invoice sequence", zap.Error(err))
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}

	return next, nil
}
