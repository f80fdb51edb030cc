package repository

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FraudRepository interface {
	AppendFlag(ctx context.Context, flag *entity.FraudFlag) error
	FindFlagsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.FraudFlag, error)
	CountFlagsByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	RecordPaymentMethodChange(ctx context.Context, change *entity.PaymentMethodChange) error
	CountPaymentMethodChangesSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
}

type fraudRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFraudRepository(db database.PgxIface, log *zap.Logger) FraudRepository {
	return &fraudRepository{
		db:  db,
		log: log.With(zap.String("repository", "fraud")),
	}
}

func (r *fraudRepository) AppendFlag(ctx context.Context, flag *entity.FraudFlag) error {
	query := `
		INSERT INTO fraud_flags (id, user_id, flag_type, reasons, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		flag.ID,
		flag.UserID,
		flag.Type,
		flag.Reasons,
		flag.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append fraud flag",
			zap.Error(err),
			zap.String("user_id", flag.UserID.String()),
			zap.String("flag_type", string(flag.Type)),
		)
		return fmt.Errorf("append fraud flag for user %s: %w", flag.UserID.String(), err)
	}

	return nil
}

func (r *fraudRepository) FindFlagsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.FraudFlag, error) {
	query := `
		SELECT id, user_id, flag_type, reasons, created_at
		FROM fraud_flags
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find fraud flags",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find fraud flags for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var flags []*entity.FraudFlag
	for rows.Next() {
		var f entity.FraudFlag
		if err := rows.Scan(&f.ID, &f.UserID, &f.Type, &f.Reasons, &f.CreatedAt); err != nil {
			r.log.Error("Failed to scan fraud flag row", zap.Error(err))
			return nil, fmt.Errorf("scan fraud flag row: %w", err)
		}
		flags = append(flags, &f)
	}

	return flags, nil
}

func (r *fraudRepository) CountFlagsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM fraud_flags WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count fraud flags",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count fraud flags for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *fraudRepository) RecordPaymentMethodChange(ctx context.Context, change *entity.PaymentMethodChange) error {
	query := `
		INSERT INTO payment_method_changes (id, user_id, method, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		change.ID,
		change.UserID,
		change.Method,
		change.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to record payment method change",
			zap.Error(err),
			zap.String("user_id", change.UserID.String()),
		)
		return fmt.Errorf("record payment method change for user %s: %w", change.UserID.String(), err)
	}

	return nil
}

func (r *fraudRepository) CountPaymentMethodChangesSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM payment_method_changes WHERE user_id = $1 AND created_at >= $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		r.log.Error("Failed to count payment method changes",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count payment method changes for user %s: %w", userID.String(), err)
	}

	return count, nil
}
