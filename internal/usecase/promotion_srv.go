package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PromotionService interface {
	// Admin
	CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error)
	ListActive(ctx context.Context) ([]response.PromotionResponse, error)

	// Validate quotes the discount without consuming usage.
	Validate(ctx context.Context, userID string, req *request.ValidatePromotionRequest) (*response.PromotionQuoteResponse, error)

	// Apply redeems a code against an existing pending, unpaid booking.
	Apply(ctx context.Context, userID string, req *request.ApplyPromotionRequest) (*response.AppliedPromotionResponse, error)

	// Redeem validates and consumes a code during booking creation; it
	// returns the discount to snapshot onto the new booking.
	Redeem(ctx context.Context, code string, customerID uuid.UUID, orderValue float64) (float64, string, error)
}

type promotionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPromotionService(repo *repository.Repository, log *zap.Logger) PromotionService {
	return &promotionService{
		repo: repo,
		log:  log.With(zap.String("service", "promotion")),
	}
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create promotion validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	promoType := entity.PromotionType(req.Type)
	if promoType == entity.PromoPercentage && req.MaxDiscount == nil {
		return nil, fmt.Errorf("max_discount is required for PERCENTAGE promotions")
	}
	if promoType == entity.PromoPercentage && req.Value > 100 {
		return nil, fmt.Errorf("percentage value cannot exceed 100")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date is before start date")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.repo.Promotion.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check existing code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("promotion code %s already exists", code)
	}

	promotion := &entity.Promotion{
		Name:          req.Name,
		Code:          code,
		Type:          promoType,
		Value:         req.Value,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		StartDate:     startDate,
		EndDate:       endDate.Add(24*time.Hour - time.Second), // inclusive end day
		UsageLimit:    req.UsageLimit,
		UserType:      entity.PromoUserType(req.UserType),
		Categories:    req.Categories,
		Cities:        req.Cities,
		Status:        entity.PromoActive,
		Description:   req.Description,
	}
	promotion.ID = utils.GenerateUUID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = promotion.CreatedAt

	if err := s.repo.Promotion.Create(ctx, promotion); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.log.Info("Promotion created",
		zap.String("promotion_id", promotion.ID.String()),
		zap.String("code", promotion.Code),
	)

	resp := response.PromotionToResponse(promotion)
	return &resp, nil
}

func (s *promotionService) ListActive(ctx context.Context) ([]response.PromotionResponse, error) {
	promotions, err := s.repo.Promotion.FindActive(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("find active promotions: %w", err)
	}

	items := make([]response.PromotionResponse, len(promotions))
	for i, promotion := range promotions {
		items[i] = response.PromotionToResponse(promotion)
	}

	return items, nil
}

func (s *promotionService) Validate(ctx context.Context, userID string, req *request.ValidatePromotionRequest) (*response.PromotionQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	discount, reason, err := s.quote(ctx, code, userUUID, req.OrderValue)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, fmt.Errorf("promotion %s not applicable: %s", code, reason)
	}

	return &response.PromotionQuoteResponse{
		Code:          code,
		Discount:      discount,
		PayableAmount: req.OrderValue - discount,
	}, nil
}

func (s *promotionService) Apply(ctx context.Context, userID string, req *request.ApplyPromotionRequest) (*response.AppliedPromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingUUID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}
	if !booking.IsCustomer(userUUID) {
		return nil, fmt.Errorf("booking %s is not owned by caller", req.BookingID)
	}
	if booking.Status != entity.BookingStatusPending || booking.PaymentState != entity.PaymentStateUnpaid {
		return nil, fmt.Errorf("promotion can only be applied to a pending unpaid booking")
	}
	if booking.PromoCode != nil {
		return nil, fmt.Errorf("booking already has a promotion applied")
	}

	discount, code, err := s.Redeem(ctx, req.Code, userUUID, booking.TotalPrice)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Booking.ApplyDiscount(ctx, booking.ID, discount, code); err != nil {
		return nil, fmt.Errorf("apply discount to booking: %w", err)
	}

	return &response.AppliedPromotionResponse{
		Code:          code,
		Discount:      discount,
		TotalPrice:    booking.TotalPrice,
		PayableAmount: booking.TotalPrice - discount,
	}, nil
}

func (s *promotionService) Redeem(ctx context.Context, code string, customerID uuid.UUID, orderValue float64) (float64, string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, reason, err := s.quote(ctx, code, customerID, orderValue)
	if err != nil {
		return 0, "", err
	}
	if reason != "" {
		return 0, "", fmt.Errorf("promotion %s not applicable: %s", code, reason)
	}

	promotion, err := s.repo.Promotion.FindByCode(ctx, code)
	if err != nil {
		return 0, "", fmt.Errorf("find promotion: %w", err)
	}

	consumed, err := s.repo.Promotion.ConsumeUsage(ctx, promotion.ID)
	if err != nil {
		return 0, "", fmt.Errorf("consume promotion usage: %w", err)
	}
	if !consumed {
		return 0, "", fmt.Errorf("promotion %s usage limit reached", code)
	}

	s.log.Info("Promotion redeemed",
		zap.String("code", code),
		zap.String("user_id", customerID.String()),
		zap.Float64("discount", discount),
	)

	return discount, code, nil
}

// quote computes the discount a code yields for the user and order value.
// A non-empty reason means the code is not applicable.
func (s *promotionService) quote(ctx context.Context, code string, customerID uuid.UUID, orderValue float64) (float64, string, error) {
	promotion, err := s.repo.Promotion.FindByCode(ctx, code)
	if err != nil {
		return 0, "", fmt.Errorf("find promotion: %w", err)
	}
	if promotion == nil {
		return 0, "", fmt.Errorf("promotion %s not found", code)
	}

	if !promotion.IsValidAt(time.Now()) {
		return 0, "promotion is not active", nil
	}

	if orderValue < promotion.MinOrderValue {
		return 0, fmt.Sprintf("order value below minimum %.2f", promotion.MinOrderValue), nil
	}

	// NEW means the user has never booked; FIRST_TIME promotions imply NEW.
	if promotion.UserType == entity.PromoUserNew || promotion.Type == entity.PromoFirstTime {
		bookings, err := s.repo.Booking.CountByCustomer(ctx, customerID)
		if err != nil {
			return 0, "", fmt.Errorf("count customer bookings: %w", err)
		}
		if bookings > 0 {
			return 0, "promotion is for new users only", nil
		}
	}
	if promotion.UserType == entity.PromoUserExisting {
		bookings, err := s.repo.Booking.CountByCustomer(ctx, customerID)
		if err != nil {
			return 0, "", fmt.Errorf("count customer bookings: %w", err)
		}
		if bookings == 0 {
			return 0, "promotion is for existing users only", nil
		}
	}

	return ComputeDiscount(promotion, orderValue), "", nil
}

// ComputeDiscount applies the promotion math: FLAT and FIRST_TIME take the
// value directly, PERCENTAGE takes value percent of the order clamped to the
// max discount. The result never exceeds the order value.
func ComputeDiscount(promotion *entity.Promotion, orderValue float64) float64 {
	var discount float64

	switch promotion.Type {
	case entity.PromoFlat, entity.PromoFirstTime:
		discount = promotion.Value
	case entity.PromoPercentage:
		discount = orderValue * promotion.Value / 100
		if promotion.MaxDiscount != nil && discount > *promotion.MaxDiscount {
			discount = *promotion.MaxDiscount
		}
	}

	if discount > orderValue {
		discount = orderValue
	}
	if discount < 0 {
		discount = 0
	}

	return discount
}
