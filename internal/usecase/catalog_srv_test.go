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

type stubProviderRepo struct {
	repository.ProviderRepository

	provider *entity.Provider

	availabilitySet *entity.AvailabilityStatus
}

func (s *stubProviderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Provider, error) {
	if s.provider != nil && s.provider.UserID == userID {
		return s.provider, nil
	}
	return nil, nil
}

func (s *stubProviderRepo) UpdateAvailability(ctx context.Context, userID uuid.UUID, status entity.AvailabilityStatus) error {
	s.availabilitySet = &status
	return nil
}

type dashboardBookingRepo struct {
	repository.BookingRepository

	earnings float64
	jobs     int64
	upcoming []*entity.Booking

	earningsSince *time.Time
}

func (s *dashboardBookingRepo) EarningsByProviderSince(ctx context.Context, providerID uuid.UUID, since time.Time) (float64, int64, error) {
	s.earningsSince = &since
	return s.earnings, s.jobs, nil
}

func (s *dashboardBookingRepo) FindUpcomingByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	return s.upcoming, nil
}

func TestSetAvailability(t *testing.T) {
	userID := uuid.New()
	provider := &entity.Provider{
		Base:         entity.Base{ID: uuid.New()},
		UserID:       userID,
		Availability: entity.AvailabilityOffline,
	}

	newService := func(providers *stubProviderRepo) CatalogService {
		repo := &repository.Repository{Provider: providers}
		return NewCatalogService(repo, zap.NewNop())
	}

	t.Run("persists a valid status", func(t *testing.T) {
		providers := &stubProviderRepo{provider: provider}
		svc := newService(providers)

		resp, err := svc.SetAvailability(context.Background(), userID.String(), &request.UpdateAvailabilityRequest{Status: "online"})
		if err != nil {
			t.Fatalf("SetAvailability: %v", err)
		}
		if providers.availabilitySet == nil || *providers.availabilitySet != entity.AvailabilityOnline {
			t.Errorf("persisted availability = %v, want online", providers.availabilitySet)
		}
		if resp.Availability != "online" {
			t.Errorf("response availability = %s, want online", resp.Availability)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		providers := &stubProviderRepo{provider: provider}
		svc := newService(providers)

		_, err := svc.SetAvailability(context.Background(), userID.String(), &request.UpdateAvailabilityRequest{Status: "away"})
		if err == nil || !strings.Contains(err.Error(), "validation failed") {
			t.Fatalf("err = %v, want validation failure", err)
		}
		if providers.availabilitySet != nil {
			t.Error("availability persisted for an unknown status")
		}
	})

	t.Run("requires a provider profile", func(t *testing.T) {
		svc := newService(&stubProviderRepo{})

		_, err := svc.SetAvailability(context.Background(), uuid.New().String(), &request.UpdateAvailabilityRequest{Status: "busy"})
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Fatalf("err = %v, want profile not found", err)
		}
	})
}

func TestGetDashboard(t *testing.T) {
	userID := uuid.New()
	provider := &entity.Provider{
		Base:          entity.Base{ID: uuid.New()},
		UserID:        userID,
		Availability:  entity.AvailabilityOnline,
		AverageRating: 4.6,
		TotalReviews:  31,
	}
	upcoming := []*entity.Booking{
		{Base: entity.Base{ID: uuid.New()}, Ref: "BK-1", ProviderID: userID, Status: entity.BookingStatusConfirmed},
		{Base: entity.Base{ID: uuid.New()}, Ref: "BK-2", ProviderID: userID, Status: entity.BookingStatusPending},
	}

	bookings := &dashboardBookingRepo{earnings: 5400, jobs: 12, upcoming: upcoming}
	repo := &repository.Repository{
		Provider: &stubProviderRepo{provider: provider},
		Booking:  bookings,
	}
	svc := NewCatalogService(repo, zap.NewNop())

	dashboard, err := svc.GetDashboard(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if dashboard.MonthlyEarnings != 5400 || dashboard.CompletedJobs != 12 {
		t.Errorf("earnings/jobs = %.2f/%d, want 5400/12", dashboard.MonthlyEarnings, dashboard.CompletedJobs)
	}
	if dashboard.AverageRating != 4.6 || dashboard.TotalReviews != 31 {
		t.Errorf("rating = %.1f/%d, want 4.6/31", dashboard.AverageRating, dashboard.TotalReviews)
	}
	if dashboard.Availability != "online" {
		t.Errorf("availability = %s, want online", dashboard.Availability)
	}
	if len(dashboard.UpcomingBookings) != 2 || dashboard.UpcomingBookings[0].Ref != "BK-1" {
		t.Errorf("upcoming = %d bookings, want the 2 stubbed ones", len(dashboard.UpcomingBookings))
	}

	// Earnings window starts at the first of the current month.
	if bookings.earningsSince == nil {
		t.Fatal("earnings window never queried")
	}
	now := time.Now()
	wantStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if !bookings.earningsSince.Equal(wantStart) {
		t.Errorf("earnings since %s, want %s", bookings.earningsSince, wantStart)
	}
}

func TestEarningsSince(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		rangeName      string
		wantStart      time.Time
		wantNormalized string
	}{
		{"daily", time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), "daily"},
		{"weekly", time.Date(2026, time.August, 13, 15, 30, 0, 0, time.UTC), "weekly"},
		{"monthly", time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), "monthly"},
		{"yearly", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "yearly"},
		{"", time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), "monthly"},
		{"quarterly", time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), "monthly"},
	}

	for _, tt := range tests {
		name := tt.rangeName
		if name == "" {
			name = "empty defaults to monthly"
		}
		t.Run(name, func(t *testing.T) {
			start, normalized := earningsSince(tt.rangeName, now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("earningsSince(%q) start = %s, want %s", tt.rangeName, start, tt.wantStart)
			}
			if normalized != tt.wantNormalized {
				t.Errorf("earningsSince(%q) range = %s, want %s", tt.rangeName, normalized, tt.wantNormalized)
			}
		})
	}
}
