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

type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	FindByCode(ctx context.Context, code string) (*entity.Promotion, error)
	FindActive(ctx context.Context, now time.Time) ([]*entity.Promotion, error)

	// ConsumeUsage increments usage_count only while it is below the usage
	// limit. Returns false when the ceiling was already reached; concurrent
	// redemptions cannot overshoot the limit.
	ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

type promotionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromotionRepository(db database.PgxIface, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `id, name, code, type, value, max_discount, min_order_value, start_date, end_date, usage_limit, usage_count, user_type, categories, cities, status, description, created_at, updated_at`

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Code,
		&p.Type,
		&p.Value,
		&p.MaxDiscount,
		&p.MinOrderValue,
		&p.StartDate,
		&p.EndDate,
		&p.UsageLimit,
		&p.UsageCount,
		&p.UserType,
		&p.Categories,
		&p.Cities,
		&p.Status,
		&p.Description,
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

func (r *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		promotion.ID,
		promotion.Name,
		promotion.Code,
		promotion.Type,
		promotion.Value,
		promotion.MaxDiscount,
		promotion.MinOrderValue,
		promotion.StartDate,
		promotion.EndDate,
		promotion.UsageLimit,
		promotion.UsageCount,
		promotion.UserType,
		promotion.Categories,
		promotion.Cities,
		promotion.Status,
		promotion.Description,
		promotion.CreatedAt,
		promotion.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create promotion",
			zap.Error(err),
			zap.String("code", promotion.Code),
		)
		return fmt.Errorf("create promotion %s: %w", promotion.Code, err)
	}

	return nil
}

func (r *promotionRepository) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = $1`

	promotion, err := scanPromotion(r.db.QueryRow(ctx, query, code))
	if err != nil {
		r.log.Error("Failed to find promotion by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find promotion by code %s: %w", code, err)
	}

	return promotion, nil
}

func (r *promotionRepository) FindActive(ctx context.Context, now time.Time) ([]*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE status = 'ACTIVE' AND start_date <= $1 AND end_date >= $1
		ORDER BY end_date
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find active promotions", zap.Error(err))
		return nil, fmt.Errorf("find active promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*entity.Promotion
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			r.log.Error("Failed to scan promotion row", zap.Error(err))
			return nil, fmt.Errorf("scan promotion row: %w", err)
		}
		promotions = append(promotions, promotion)
	}

	return promotions, nil
}

func (r *promotionRepository) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promotions
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND usage_count < usage_limit
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to consume promotion usage",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return false, fmt.Errorf("consume usage for promotion %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
