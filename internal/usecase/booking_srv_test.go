package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	repository.BookingRepository

	booking   *entity.Booking
	created   *entity.Booking
	updatedTo *entity.BookingStatus
}

func (s *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, nil
	}
	return s.booking, nil
}

func (s *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	s.created = booking
	return nil
}

func (s *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	s.updatedTo = &status
	return nil
}

type fakeServiceRepo struct {
	repository.ServiceRepository

	service *entity.Service
}

func (s *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if s.service == nil || s.service.ID != id {
		return nil, nil
	}
	return s.service, nil
}

type quietFraud struct {
	FraudService
}

func (quietFraud) CheckBooking(ctx context.Context, customerID uuid.UUID, newLocation *Coordinate) (Verdict, error) {
	return Verdict{}, nil
}

type emptyPaymentRepo struct {
	repository.PaymentRepository
}

func (emptyPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return nil, nil
}

type emptyReviewRepo struct {
	repository.ReviewRepository
}

func (emptyReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return nil, nil
}

func TestBookingTransition(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()
	strangerID := uuid.New()
	bookingID := uuid.New()

	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      string
		actor   uuid.UUID
		wantErr string
	}{
		{"provider confirms pending", entity.BookingStatusPending, "confirmed", providerID, ""},
		{"customer cannot confirm", entity.BookingStatusPending, "confirmed", customerID, "only the provider"},
		{"provider completes confirmed", entity.BookingStatusConfirmed, "completed", providerID, ""},
		{"customer cannot complete", entity.BookingStatusConfirmed, "completed", customerID, "only the provider"},
		{"customer cancels pending", entity.BookingStatusPending, "cancelled", customerID, ""},
		{"provider cancels confirmed", entity.BookingStatusConfirmed, "cancelled", providerID, ""},
		{"stranger cannot cancel", entity.BookingStatusPending, "cancelled", strangerID, "not visible to caller"},
		{"cannot complete a pending booking", entity.BookingStatusPending, "completed", providerID, "cannot move booking"},
		{"completed is terminal", entity.BookingStatusCompleted, "cancelled", customerID, "cannot move booking"},
		{"cancelled is terminal", entity.BookingStatusCancelled, "confirmed", providerID, "cannot move booking"},
		{"unknown status rejected for anyone", entity.BookingStatusPending, "accepted", strangerID, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{booking: &entity.Booking{
				Base:       entity.Base{ID: bookingID},
				Ref:        "TASK-20250615-120000-0001",
				CustomerID: customerID,
				ProviderID: providerID,
				Status:     tt.from,
			}}
			repo := &repository.Repository{Booking: bookings}
			svc := NewBookingService(repo, nil, nil, &recordPublisher{}, "UTC", zap.NewNop())

			resp, err := svc.Transition(context.Background(), tt.actor.String(), bookingID.String(),
				&request.TransitionBookingRequest{Status: tt.to})

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Transition: %v", err)
				}
				if resp.Status != tt.to {
					t.Errorf("response status = %s, want %s", resp.Status, tt.to)
				}
				if bookings.updatedTo == nil || string(*bookings.updatedTo) != tt.to {
					t.Errorf("persisted status = %v, want %s", bookings.updatedTo, tt.to)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
			if bookings.updatedTo != nil {
				t.Errorf("status was persisted (%s) on a rejected transition", *bookings.updatedTo)
			}
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		repo := &repository.Repository{Booking: &fakeBookingRepo{}}
		svc := NewBookingService(repo, nil, nil, &recordPublisher{}, "UTC", zap.NewNop())

		_, err := svc.Transition(context.Background(), customerID.String(), uuid.New().String(),
			&request.TransitionBookingRequest{Status: "cancelled"})
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("err = %v, want not found", err)
		}
	})
}

func TestCreateBookingSnapshotsService(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()

	service := &entity.Service{
		ProviderID:      providerID,
		Title:           "Deep cleaning",
		Price:           750,
		DurationMinutes: 90,
		IsActive:        true,
	}
	service.ID = uuid.New()

	bookings := &fakeBookingRepo{}
	repo := &repository.Repository{
		Booking: bookings,
		Service: &fakeServiceRepo{service: service},
	}
	svc := NewBookingService(repo, quietFraud{}, nil, &recordPublisher{}, "UTC", zap.NewNop())

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	resp, err := svc.CreateBooking(context.Background(), customerID.String(), &request.CreateBookingRequest{
		ServiceID: service.ID.String(),
		Date:      tomorrow,
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	created := bookings.created
	if created == nil {
		t.Fatal("no booking persisted")
	}
	if created.TotalPrice != 750 {
		t.Errorf("TotalPrice = %f, want the service price 750", created.TotalPrice)
	}
	if created.ProviderID != providerID {
		t.Errorf("ProviderID = %s, want the service's provider %s", created.ProviderID, providerID)
	}
	if created.StartMinute != 600 || created.EndMinute != 690 {
		t.Errorf("window = %d..%d, want 600..690", created.StartMinute, created.EndMinute)
	}
	if created.Status != entity.BookingStatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}

	// A later price change must not affect the stored booking.
	service.Price = 999
	if created.TotalPrice != 750 {
		t.Errorf("TotalPrice = %f after service price change, want 750", created.TotalPrice)
	}
	if resp.TotalPrice != 750 {
		t.Errorf("response TotalPrice = %f, want 750", resp.TotalPrice)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	customerID := uuid.New()

	service := &entity.Service{
		ProviderID:      uuid.New(),
		Title:           "Deep cleaning",
		Price:           750,
		DurationMinutes: 60,
		IsActive:        true,
	}
	service.ID = uuid.New()

	repo := &repository.Repository{
		Booking: &fakeBookingRepo{},
		Service: &fakeServiceRepo{service: service},
	}
	svc := NewBookingService(repo, quietFraud{}, nil, &recordPublisher{}, "UTC", zap.NewNop())

	t.Run("yesterday rejected", func(t *testing.T) {
		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		_, err := svc.CreateBooking(context.Background(), customerID.String(), &request.CreateBookingRequest{
			ServiceID: service.ID.String(),
			Date:      yesterday,
			StartTime: "10:00",
		})
		if err == nil || !strings.Contains(err.Error(), "past date") {
			t.Errorf("err = %v, want past date", err)
		}
	})

	t.Run("today accepted", func(t *testing.T) {
		today := time.Now().UTC().Format("2006-01-02")
		if _, err := svc.CreateBooking(context.Background(), customerID.String(), &request.CreateBookingRequest{
			ServiceID: service.ID.String(),
			Date:      today,
			StartTime: "10:00",
		}); err != nil {
			t.Errorf("CreateBooking: %v", err)
		}
	})
}

func TestDateOnlyKeepsLocation(t *testing.T) {
	// Behind UTC: local June 14 evening is already June 15 in UTC. A booking
	// for the local "today" must not read as past.
	loc := time.FixedZone("UTC-10", -10*3600)
	now := time.Date(2025, 6, 14, 20, 0, 0, 0, loc)

	day := dateOnly(now)
	if !day.Equal(time.Date(2025, 6, 14, 0, 0, 0, 0, loc)) {
		t.Errorf("dateOnly = %v, want local midnight June 14", day)
	}

	today := time.Date(2025, 6, 14, 0, 0, 0, 0, loc)
	if today.Before(day) {
		t.Error("local today reads as past")
	}

	tomorrowUTC := now.UTC().Truncate(24 * time.Hour)
	if !today.Before(tomorrowUTC) {
		t.Skip("UTC truncation happens to agree at this instant")
	}
}

func TestGetBookingVisibility(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()
	strangerID := uuid.New()
	bookingID := uuid.New()

	booking := &entity.Booking{
		Base:       entity.Base{ID: bookingID},
		Ref:        "TASK-20250615-120000-0002",
		ServiceID:  uuid.New(),
		CustomerID: customerID,
		ProviderID: providerID,
		Status:     entity.BookingStatusConfirmed,
	}

	repo := &repository.Repository{
		Booking: &fakeBookingRepo{booking: booking},
		Service: &fakeServiceRepo{},
		Payment: emptyPaymentRepo{},
		Review:  emptyReviewRepo{},
	}
	svc := NewBookingService(repo, nil, nil, &recordPublisher{}, "UTC", zap.NewNop())

	tests := []struct {
		name    string
		userID  uuid.UUID
		role    string
		wantErr string
	}{
		{"customer sees own booking", customerID, "user", ""},
		{"provider sees own booking", providerID, "provider", ""},
		{"admin sees any booking", strangerID, "admin", ""},
		{"stranger denied", strangerID, "user", "not visible to caller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := svc.GetBooking(context.Background(), tt.userID.String(), tt.role, bookingID.String())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("GetBooking: %v", err)
				}
				if detail.Ref != booking.Ref {
					t.Errorf("ref = %s, want %s", detail.Ref, booking.Ref)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
