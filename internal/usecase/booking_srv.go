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
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingDetailResponse, error)
	GetCustomerBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetProviderBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Transition moves a booking along the status graph. Confirm and
	// complete are provider actions; either party may cancel a booking that
	// is still pending or confirmed.
	Transition(ctx context.Context, userID, bookingID string, req *request.TransitionBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	fraud     FraudService
	promotion PromotionService
	publisher queue.Publisher
	loc       *time.Location
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, fraud FraudService, promotion PromotionService, publisher queue.Publisher, timezone string, log *zap.Logger) BookingService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn("Unknown timezone, using UTC", zap.String("timezone", timezone))
		loc = time.UTC
	}

	return &bookingService{
		repo:      repo,
		fraud:     fraud,
		promotion: promotion,
		publisher: publisher,
		loc:       loc,
		log:       log.With(zap.String("service", "booking")),
	}
}

// dateOnly strips the clock from t, keeping its location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	serviceUUID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err))
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil || !service.IsActive {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date: %w", err)
	}
	// "Today" is judged in the service timezone, not in UTC.
	if date.Before(dateOnly(time.Now().In(s.loc))) {
		return nil, fmt.Errorf("cannot book for a past date")
	}

	startMinute, err := utils.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endMinute := startMinute + service.DurationMinutes
	if endMinute > 24*60 {
		return nil, fmt.Errorf("booking does not fit within the day")
	}

	// Fraud rules are advisory. A suspicious verdict is flagged, never a
	// rejection; a failed check must not block the booking either.
	var newLocation *Coordinate
	if req.Latitude != nil && req.Longitude != nil {
		newLocation = &Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	if _, err := s.fraud.CheckBooking(ctx, userUUID, newLocation); err != nil {
		s.log.Error("Booking fraud check failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}

	booking := &entity.Booking{
		Ref:          utils.GenerateBookingRef(),
		ServiceID:    service.ID,
		CustomerID:   userUUID,
		ProviderID:   service.ProviderID,
		Date:         date,
		StartMinute:  startMinute,
		EndMinute:    endMinute,
		Status:       entity.BookingStatusPending,
		TotalPrice:   service.Price,
		PaymentState: entity.PaymentStateUnpaid,
		Notes:        req.Notes,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	booking.ID = utils.GenerateUUID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	if req.PromoCode != nil && *req.PromoCode != "" {
		discount, code, err := s.promotion.Redeem(ctx, *req.PromoCode, userUUID, service.Price)
		if err != nil {
			return nil, err
		}
		booking.Discount = discount
		booking.PromoCode = &code
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ref", booking.Ref),
		zap.String("customer_id", userID),
	)

	s.notify(ctx, notifier.RouteBookingCreated, booking.ProviderID, booking,
		"New booking request", fmt.Sprintf("%s requested on %s at %s", service.Title, req.Date, req.StartTime))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(userUUID) && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("booking %s is not visible to caller", bookingID)
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
	}

	if service, err := s.repo.Service.FindByID(ctx, booking.ServiceID); err == nil && service != nil {
		serviceResp := response.ServiceToResponse(service)
		detail.Service = &serviceResp
	}
	if payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID); err == nil && payment != nil {
		paymentResp := response.PaymentToResponse(payment)
		detail.Payment = &paymentResp
	}
	if review, err := s.repo.Review.FindByBookingID(ctx, booking.ID); err == nil && review != nil {
		reviewResp := response.ReviewToResponse(review)
		detail.Review = &reviewResp
	}

	return detail, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return s.listBookings(ctx, userID, req, s.repo.Booking.FindByCustomer, s.repo.Booking.CountByCustomer)
}

func (s *bookingService) GetProviderBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return s.listBookings(ctx, userID, req, s.repo.Booking.FindByProvider, s.repo.Booking.CountByProvider)
}

func (s *bookingService) listBookings(
	ctx context.Context,
	userID string,
	req *request.PaginatedRequest,
	find func(context.Context, uuid.UUID, int, int) ([]*entity.Booking, error),
	count func(context.Context, uuid.UUID) (int64, error),
) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := find(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	total, err := count(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) Transition(ctx context.Context, userID, bookingID string, req *request.TransitionBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next := entity.BookingStatus(req.Status)

	switch next {
	case entity.BookingStatusConfirmed, entity.BookingStatusCompleted:
		if !booking.IsProvider(userUUID) {
			return nil, fmt.Errorf("only the provider can %s a booking", req.Status)
		}
	case entity.BookingStatusCancelled:
		if !booking.IsParty(userUUID) {
			return nil, fmt.Errorf("booking %s is not visible to caller", bookingID)
		}
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move booking from %s to %s", booking.Status, next)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, next); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.Status = next
	booking.UpdatedAt = time.Now()

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
		zap.String("actor_id", userID),
	)

	// Notify whichever side did not act.
	recipient := booking.CustomerID
	if booking.IsCustomer(userUUID) {
		recipient = booking.ProviderID
	}

	route := notifier.RouteBookingUpdated
	title := "Booking update"
	body := fmt.Sprintf("Booking %s is now %s", booking.Ref, next)
	if next == entity.BookingStatusCancelled {
		route = notifier.RouteBookingCancelled
		title = "Booking cancelled"
		body = fmt.Sprintf("Booking %s was cancelled", booking.Ref)
	}
	s.notify(ctx, route, recipient, booking, title, body)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *bookingService) notify(ctx context.Context, route string, recipient uuid.UUID, booking *entity.Booking, title, body string) {
	event := notifier.Event{
		RecipientID: recipient,
		Title:       title,
		Body:        body,
		BookingID:   booking.ID,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, route, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("routing_key", route),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}
