package repository

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error)

	// Business queries
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdatePaymentState(ctx context.Context, bookingID uuid.UUID, state entity.PaymentState) error
	ApplyDiscount(ctx context.Context, bookingID uuid.UUID, discount float64, promoCode string) error

	// Fraud signal inputs
	CountCancelledSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error)
	CountCreatedSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error)
	FindLatestByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Booking, error)

	// Dashboard queries
	EarningsByProviderSince(ctx context.Context, providerID uuid.UUID, since time.Time) (float64, int64, error)
	FindUpcomingByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, ref, service_id, customer_id, provider_id, date, start_minute, end_minute, status, total_price, discount, promo_code, payment_state, notes, latitude, longitude, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Ref,
		&b.ServiceID,
		&b.CustomerID,
		&b.ProviderID,
		&b.Date,
		&b.StartMinute,
		&b.EndMinute,
		&b.Status,
		&b.TotalPrice,
		&b.Discount,
		&b.PromoCode,
		&b.PaymentState,
		&b.Notes,
		&b.Latitude,
		&b.Longitude,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Ref,
		booking.ServiceID,
		booking.CustomerID,
		booking.ProviderID,
		booking.Date,
		booking.StartMinute,
		booking.EndMinute,
		booking.Status,
		booking.TotalPrice,
		booking.Discount,
		booking.PromoCode,
		booking.PaymentState,
		booking.Notes,
		booking.Latitude,
		booking.Longitude,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("ref", booking.Ref),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Ref, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) findByParty(ctx context.Context, column string, partyID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, partyID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String("party", column),
			zap.String("party_id", partyID.String()),
		)
		return nil, fmt.Errorf("find bookings by %s %s: %w", column, partyID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) countByParty(ctx context.Context, column string, partyID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ` + column + ` = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, partyID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String("party", column),
			zap.String("party_id", partyID.String()),
		)
		return 0, fmt.Errorf("count bookings by %s %s: %w", column, partyID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "customer_id", customerID, limit, offset)
}

func (r *bookingRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return r.countByParty(ctx, "customer_id", customerID)
}

func (r *bookingRepository) FindByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.findByParty(ctx, "provider_id", providerID, limit, offset)
}

func (r *bookingRepository) CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return r.countByParty(ctx, "provider_id", providerID)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePaymentState(ctx context.Context, bookingID uuid.UUID, state entity.PaymentState) error {
	query := `UPDATE bookings SET payment_state = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, state)
	if err != nil {
		r.log.Error("Failed to update booking payment state",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_state", string(state)),
		)
		return fmt.Errorf("update booking %s payment state: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) ApplyDiscount(ctx context.Context, bookingID uuid.UUID, discount float64, promoCode string) error {
	query := `UPDATE bookings SET discount = $2, promo_code = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, discount, promoCode)
	if err != nil {
		r.log.Error("Failed to apply discount",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Float64("discount", discount),
		)
		return fmt.Errorf("apply discount to booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) CountCancelledSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND status = 'cancelled' AND updated_at >= $2`

	var count int
	if err := r.db.QueryRow(ctx, query, customerID, since).Scan(&count); err != nil {
		r.log.Error("Failed to count recent cancellations",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count cancelled bookings for %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountCreatedSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND created_at >= $2`

	var count int
	if err := r.db.QueryRow(ctx, query, customerID, since).Scan(&count); err != nil {
		r.log.Error("Failed to count recent bookings",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count recent bookings for %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindLatestByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		r.log.Error("Failed to find latest booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find latest booking for %s: %w", customerID.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) EarningsByProviderSince(ctx context.Context, providerID uuid.UUID, since time.Time) (float64, int64, error) {
	query := `
		SELECT COALESCE(SUM(total_price - discount), 0), COUNT(*)
		FROM bookings
		WHERE provider_id = $1 AND status = $2 AND updated_at >= $3
	`

	var total float64
	var jobs int64
	err := r.db.QueryRow(ctx, query, providerID, entity.BookingStatusCompleted, since).Scan(&total, &jobs)
	if err != nil {
		r.log.Error("Failed to aggregate provider earnings",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, 0, fmt.Errorf("aggregate earnings for provider %s: %w", providerID.String(), err)
	}

	return total, jobs, nil
}

func (r *bookingRepository) FindUpcomingByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		  AND date >= $2 AND date <= $3
		  AND status IN ($4, $5)
		ORDER BY date ASC, start_minute ASC
	`

	rows, err := r.db.Query(ctx, query, providerID, from, to,
		entity.BookingStatusPending, entity.BookingStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to find upcoming bookings",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find upcoming bookings for provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
