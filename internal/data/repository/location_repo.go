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

type LocationRepository interface {
	Create(ctx context.Context, ping *entity.LocationPing) error
	FindLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.LocationPing, error)
	FindTrailByBooking(ctx context.Context, bookingID uuid.UUID, limit int) ([]*entity.LocationPing, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.LocationPing, error)
}

type locationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLocationRepository(db database.PgxIface, log *zap.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log.With(zap.String("repository", "location")),
	}
}

const locationColumns = `id, booking_id, user_id, latitude, longitude, created_at`

func scanLocationPing(row pgx.Row) (*entity.LocationPing, error) {
	var p entity.LocationPing
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.UserID,
		&p.Latitude,
		&p.Longitude,
		&p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *locationRepository) Create(ctx context.Context, ping *entity.LocationPing) error {
	query := `
		INSERT INTO location_pings (id, booking_id, user_id, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		ping.ID,
		ping.BookingID,
		ping.UserID,
		ping.Latitude,
		ping.Longitude,
		ping.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create location ping",
			zap.Error(err),
			zap.String("booking_id", ping.BookingID.String()),
		)
		return fmt.Errorf("create location ping for booking %s: %w", ping.BookingID.String(), err)
	}

	return nil
}

func (r *locationRepository) FindLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*entity.LocationPing, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location_pings
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	ping, err := scanLocationPing(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		r.log.Error("Failed to find latest location ping",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find latest location ping for booking %s: %w", bookingID.String(), err)
	}

	return ping, nil
}

func (r *locationRepository) FindTrailByBooking(ctx context.Context, bookingID uuid.UUID, limit int) ([]*entity.LocationPing, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location_pings
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, bookingID, limit)
	if err != nil {
		r.log.Error("Failed to find location trail",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find location trail for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var pings []*entity.LocationPing
	for rows.Next() {
		ping, err := scanLocationPing(rows)
		if err != nil {
			r.log.Error("Failed to scan location ping row", zap.Error(err))
			return nil, fmt.Errorf("scan location ping row: %w", err)
		}
		pings = append(pings, ping)
	}

	return pings, nil
}

func (r *locationRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.LocationPing, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location_pings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	ping, err := scanLocationPing(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.log.Error("Failed to find latest location ping for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find latest location ping for user %s: %w", userID.String(), err)
	}

	return ping, nil
}
