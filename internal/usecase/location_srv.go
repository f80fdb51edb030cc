package usecase

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/internal/realtime"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LocationService interface {
	// RecordPing stores a point on the booking's location trail and relays
	// it to the live room.
	RecordPing(ctx context.Context, userID, bookingID string, req *request.RecordLocationRequest) (*response.LocationPingResponse, error)
	GetLatest(ctx context.Context, userID, bookingID string) (*response.LocationPingResponse, error)
	GetTrail(ctx context.Context, userID, bookingID string, limit int) ([]response.LocationPingResponse, error)
}

type locationService struct {
	repo *repository.Repository
	hub  *realtime.Hub
	log  *zap.Logger
}

func NewLocationService(repo *repository.Repository, hub *realtime.Hub, log *zap.Logger) LocationService {
	return &locationService{
		repo: repo,
		hub:  hub,
		log:  log.With(zap.String("service", "location")),
	}
}

func (s *locationService) RecordPing(ctx context.Context, userID, bookingID string, req *request.RecordLocationRequest) (*response.LocationPingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, userUUID, err := s.authorize(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	// Sharing only makes sense while the job is live.
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("location sharing requires a confirmed booking")
	}

	ping := &entity.LocationPing{
		BookingID: booking.ID,
		UserID:    userUUID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	ping.ID = utils.GenerateUUID()
	ping.CreatedAt = time.Now()

	if err := s.repo.Location.Create(ctx, ping); err != nil {
		return nil, fmt.Errorf("create location ping: %w", err)
	}

	resp := response.LocationPingToResponse(ping)

	s.hub.Broadcast(realtime.Message{
		BookingID: booking.ID,
		Kind:      realtime.KindLocation,
		Payload:   resp,
	})

	return &resp, nil
}

func (s *locationService) GetLatest(ctx context.Context, userID, bookingID string) (*response.LocationPingResponse, error) {
	booking, _, err := s.authorize(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	ping, err := s.repo.Location.FindLatestByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find latest location: %w", err)
	}
	if ping == nil {
		return nil, fmt.Errorf("no location recorded for booking %s", bookingID)
	}

	resp := response.LocationPingToResponse(ping)
	return &resp, nil
}

func (s *locationService) GetTrail(ctx context.Context, userID, bookingID string, limit int) ([]response.LocationPingResponse, error) {
	booking, _, err := s.authorize(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 500 {
		limit = 100
	}

	pings, err := s.repo.Location.FindTrailByBooking(ctx, booking.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("find location trail: %w", err)
	}

	items := make([]response.LocationPingResponse, len(pings))
	for i, ping := range pings {
		items[i] = response.LocationPingToResponse(ping)
	}

	return items, nil
}

func (s *locationService) authorize(ctx context.Context, userID, bookingID string) (*entity.Booking, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err))
		return nil, uuid.Nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, uuid.Nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if !booking.IsParty(userUUID) {
		return nil, uuid.Nil, fmt.Errorf("booking %s is not visible to caller", bookingID)
	}

	return booking, userUUID, nil
}
