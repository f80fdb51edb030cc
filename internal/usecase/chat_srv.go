package usecase

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/internal/notifier"
	"tasktakr/internal/queue"
	"tasktakr/internal/realtime"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatService interface {
	// SendMessage persists the message, then fans it out to the booking's
	// live room and notification queue.
	SendMessage(ctx context.Context, userID, bookingID string, req *request.SendMessageRequest) (*response.ChatMessageResponse, error)
	GetHistory(ctx context.Context, userID, bookingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ChatMessageResponse], error)

	// MarkRead marks every message addressed to the caller in the thread.
	MarkRead(ctx context.Context, userID, bookingID string) error
}

type chatService struct {
	repo      *repository.Repository
	hub       *realtime.Hub
	publisher queue.Publisher
	log       *zap.Logger
}

func NewChatService(repo *repository.Repository, hub *realtime.Hub, publisher queue.Publisher, log *zap.Logger) ChatService {
	return &chatService{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		log:       log.With(zap.String("service", "chat")),
	}
}

func (s *chatService) SendMessage(ctx context.Context, userID, bookingID string, req *request.SendMessageRequest) (*response.ChatMessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, sender, err := s.resolveParty(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status.Terminal() {
		return nil, fmt.Errorf("cannot message on a %s booking", booking.Status)
	}

	message := &entity.ChatMessage{
		BookingID: booking.ID,
		Sender:    sender,
		Receiver:  sender.Counterpart(booking),
		Body:      req.Body,
	}
	message.ID = utils.GenerateUUID()
	message.CreatedAt = time.Now()

	if err := s.repo.Chat.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}

	resp := response.ChatMessageToResponse(message)

	s.hub.Broadcast(realtime.Message{
		BookingID: booking.ID,
		Kind:      realtime.KindChat,
		Payload:   resp,
	})

	event := notifier.Event{
		RecipientID: message.Receiver.ID,
		Title:       "New message",
		Body:        req.Body,
		BookingID:   booking.ID,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, notifier.RouteChatMessage, event); err != nil {
		s.log.Warn("Failed to publish chat event",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
	}

	return &resp, nil
}

func (s *chatService) GetHistory(ctx context.Context, userID, bookingID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ChatMessageResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, _, err := s.resolveParty(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Chat.FindByBookingID(ctx, booking.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find chat messages: %w", err)
	}

	total, err := s.repo.Chat.CountByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("count chat messages: %w", err)
	}

	items := make([]response.ChatMessageResponse, len(messages))
	for i, message := range messages {
		items[i] = response.ChatMessageToResponse(message)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, bookingID string) error {
	booking, party, err := s.resolveParty(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Chat.MarkRead(ctx, booking.ID, party); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}

	return nil
}

func (s *chatService) resolveParty(ctx context.Context, userID, bookingID string) (*entity.Booking, entity.Party, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, entity.Party{}, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, entity.Party{}, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err))
		return nil, entity.Party{}, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, entity.Party{}, fmt.Errorf("booking %s not found", bookingID)
	}

	party, err := entity.PartyFor(booking, userUUID)
	if err != nil {
		return nil, entity.Party{}, fmt.Errorf("booking %s is not visible to caller", bookingID)
	}

	return booking, party, nil
}
