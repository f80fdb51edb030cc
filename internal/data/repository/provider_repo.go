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

type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error

	// UpdateAvailability flips the provider's self-reported status.
	UpdateAvailability(ctx context.Context, userID uuid.UUID, status entity.AvailabilityStatus) error

	// UpdateRating refreshes the materialized review aggregate.
	UpdateRating(ctx context.Context, userID uuid.UUID, average float64, total int) error
}

type providerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

const providerColumns = `id, user_id, category, city, latitude, longitude, approval_status, availability, max_daily_jobs, average_rating, total_reviews, created_at, updated_at`

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Category,
		&p.City,
		&p.Latitude,
		&p.Longitude,
		&p.ApprovalStatus,
		&p.Availability,
		&p.MaxDailyJobs,
		&p.AverageRating,
		&p.TotalReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, user_id, category, city, latitude, longitude, approval_status, availability, max_daily_jobs, average_rating, total_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.UserID,
		provider.Category,
		provider.City,
		provider.Latitude,
		provider.Longitude,
		provider.ApprovalStatus,
		provider.Availability,
		provider.MaxDailyJobs,
		provider.AverageRating,
		provider.TotalReviews,
		provider.CreatedAt,
		provider.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create provider profile",
			zap.Error(err),
			zap.String("user_id", provider.UserID.String()),
		)
		return fmt.Errorf("create provider for user %s: %w", provider.UserID.String(), err)
	}

	return nil
}

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id.String(), err)
	}

	return provider, nil
}

func (r *providerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE user_id = $1`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		r.log.Error("Failed to find provider by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find provider by user ID %s: %w", userID.String(), err)
	}

	return provider, nil
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.Provider) error {
	query := `
		UPDATE providers
		SET category = $2, city = $3, latitude = $4, longitude = $5,
		    approval_status = $6, max_daily_jobs = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.Category,
		provider.City,
		provider.Latitude,
		provider.Longitude,
		provider.ApprovalStatus,
		provider.MaxDailyJobs,
		provider.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update provider",
			zap.Error(err),
			zap.String("provider_id", provider.ID.String()),
		)
		return fmt.Errorf("update provider %s: %w", provider.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s not found", provider.ID.String())
	}

	return nil
}

func (r *providerRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, status entity.AvailabilityStatus) error {
	query := `
		UPDATE providers
		SET availability = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, status)
	if err != nil {
		r.log.Error("Failed to update provider availability",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("update availability for provider user %s: %w", userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider profile for user %s not found", userID.String())
	}

	return nil
}

func (r *providerRepository) UpdateRating(ctx context.Context, userID uuid.UUID, average float64, total int) error {
	query := `
		UPDATE providers
		SET average_rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, average, total)
	if err != nil {
		r.log.Error("Failed to update provider rating",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("update rating for provider user %s: %w", userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider profile for user %s not found", userID.String())
	}

	return nil
}
