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

type stubPromotionRepo struct {
	repository.PromotionRepository

	promotion *entity.Promotion
	consumed  bool
}

func (s *stubPromotionRepo) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	if s.promotion == nil || s.promotion.Code != code {
		return nil, nil
	}
	return s.promotion, nil
}

func (s *stubPromotionRepo) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	s.consumed = true
	return true, nil
}

type countingBookingRepo struct {
	repository.BookingRepository

	customerBookings int64
}

func (s *countingBookingRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return s.customerBookings, nil
}

func TestPromotionValidate(t *testing.T) {
	now := time.Now()

	activePromo := func() *entity.Promotion {
		p := &entity.Promotion{
			Name:          "Welcome",
			Code:          "WELCOME50",
			Type:          entity.PromoFlat,
			Value:         50,
			MinOrderValue: 200,
			StartDate:     now.AddDate(0, 0, -1),
			EndDate:       now.AddDate(0, 0, 7),
			UsageLimit:    10,
			UserType:      entity.PromoUserAll,
			Status:        entity.PromoActive,
		}
		p.ID = uuid.New()
		return p
	}

	newService := func(promotions *stubPromotionRepo, bookings *countingBookingRepo) PromotionService {
		repo := &repository.Repository{Promotion: promotions, Booking: bookings}
		return NewPromotionService(repo, zap.NewNop())
	}

	userID := uuid.New().String()

	t.Run("quotes a valid code without consuming usage", func(t *testing.T) {
		promotions := &stubPromotionRepo{promotion: activePromo()}
		svc := newService(promotions, &countingBookingRepo{})

		quote, err := svc.Validate(context.Background(), userID,
			&request.ValidatePromotionRequest{Code: "welcome50", OrderValue: 500})
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if quote.Discount != 50 || quote.PayableAmount != 450 {
			t.Errorf("quote = %+v, want discount 50 payable 450", quote)
		}
		if promotions.consumed {
			t.Error("validate consumed usage")
		}
	})

	t.Run("unknown code fails as not found", func(t *testing.T) {
		svc := newService(&stubPromotionRepo{}, &countingBookingRepo{})

		_, err := svc.Validate(context.Background(), userID,
			&request.ValidatePromotionRequest{Code: "NOSUCH", OrderValue: 500})
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("expired code fails as not applicable", func(t *testing.T) {
		p := activePromo()
		p.EndDate = now.AddDate(0, 0, -1)
		svc := newService(&stubPromotionRepo{promotion: p}, &countingBookingRepo{})

		_, err := svc.Validate(context.Background(), userID,
			&request.ValidatePromotionRequest{Code: "WELCOME50", OrderValue: 500})
		if err == nil || !strings.Contains(err.Error(), "not applicable") {
			t.Errorf("err = %v, want not applicable", err)
		}
	})

	t.Run("order below minimum fails as not applicable", func(t *testing.T) {
		svc := newService(&stubPromotionRepo{promotion: activePromo()}, &countingBookingRepo{})

		_, err := svc.Validate(context.Background(), userID,
			&request.ValidatePromotionRequest{Code: "WELCOME50", OrderValue: 100})
		if err == nil || !strings.Contains(err.Error(), "not applicable") {
			t.Errorf("err = %v, want not applicable", err)
		}
	})

	t.Run("new-user code rejects a returning customer", func(t *testing.T) {
		p := activePromo()
		p.UserType = entity.PromoUserNew
		svc := newService(&stubPromotionRepo{promotion: p}, &countingBookingRepo{customerBookings: 3})

		_, err := svc.Validate(context.Background(), userID,
			&request.ValidatePromotionRequest{Code: "WELCOME50", OrderValue: 500})
		if err == nil || !strings.Contains(err.Error(), "new users only") {
			t.Errorf("err = %v, want new users only", err)
		}
	})
}
