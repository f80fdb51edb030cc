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

type ChatRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID, limit, offset int) ([]*entity.ChatMessage, error)
	CountByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, bookingID uuid.UUID, receiver entity.Party) error
}

type chatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChatRepository(db database.PgxIface, log *zap.Logger) ChatRepository {
	return &chatRepository{
		db:  db,
		log: log.With(zap.String("repository", "chat")),
	}
}

const chatColumns = `id, booking_id, sender_kind, sender_id, receiver_kind, receiver_id, body, read, created_at`

func scanChatMessage(row pgx.Row) (*entity.ChatMessage, error) {
	var m entity.ChatMessage
	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.Sender.Kind,
		&m.Sender.ID,
		&m.Receiver.Kind,
		&m.Receiver.ID,
		&m.Body,
		&m.Read,
		&m.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *chatRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, booking_id, sender_kind, sender_id, receiver_kind, receiver_id, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.BookingID,
		message.Sender.Kind,
		message.Sender.ID,
		message.Receiver.Kind,
		message.Receiver.ID,
		message.Body,
		message.Read,
		message.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create chat message",
			zap.Error(err),
			zap.String("booking_id", message.BookingID.String()),
		)
		return fmt.Errorf("create chat message for booking %s: %w", message.BookingID.String(), err)
	}

	return nil
}

func (r *chatRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID, limit, offset int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT ` + chatColumns + `
		FROM chat_messages
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, bookingID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find chat messages",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find chat messages for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var messages []*entity.ChatMessage
	for rows.Next() {
		message, err := scanChatMessage(rows)
		if err != nil {
			r.log.Error("Failed to scan chat message row", zap.Error(err))
			return nil, fmt.Errorf("scan chat message row: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func (r *chatRepository) CountByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM chat_messages WHERE booking_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&count); err != nil {
		r.log.Error("Failed to count chat messages",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("count chat messages for booking %s: %w", bookingID.String(), err)
	}

	return count, nil
}

func (r *chatRepository) MarkRead(ctx context.Context, bookingID uuid.UUID, receiver entity.Party) error {
	query := `
		UPDATE chat_messages
		SET read = true
		WHERE booking_id = $1 AND receiver_kind = $2 AND receiver_id = $3 AND read = false
	`

	_, err := r.db.Exec(ctx, query, bookingID, receiver.Kind, receiver.ID)
	if err != nil {
		r.log.Error("Failed to mark chat messages read",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("receiver_id", receiver.ID.String()),
		)
		return fmt.Errorf("mark messages read for booking %s: %w", bookingID.String(), err)
	}

	return nil
}
