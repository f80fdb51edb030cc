package usecase

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// CreateReview accepts one review per completed booking, written by its
	// customer, then recomputes the provider's rating aggregate.
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// DeleteReview removes a review (admin moderation) and refreshes the
	// aggregate.
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
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
	if booking.Status != entity.BookingStatusCompleted {
		return nil, fmt.Errorf("only completed bookings can be reviewed")
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s already has a review", req.BookingID)
	}

	review := &entity.Review{
		BookingID:  booking.ID,
		UserID:     userUUID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	review.ID = utils.GenerateUUID()
	review.CreatedAt = time.Now()

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.refreshAggregate(ctx, booking.ProviderID)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", providerID, err)
	}

	reviews, err := s.repo.Review.FindByProviderID(ctx, providerUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	total, err := s.repo.Review.CountByProviderID(ctx, providerUUID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	items := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	// Resolve the provider before the row disappears.
	review, err := s.findByID(ctx, reviewUUID)
	if err != nil {
		return err
	}
	providerID := review.ProviderID

	if err := s.repo.Review.Delete(ctx, reviewUUID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.refreshAggregate(ctx, providerID)

	s.log.Info("Review deleted", zap.String("review_id", reviewID))
	return nil
}

func (s *reviewService) findByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s not found", id.String())
	}
	return review, nil
}

// refreshAggregate recomputes the provider's materialized rating. A failed
// refresh leaves a stale aggregate until the next review write; it does not
// undo the review itself.
func (s *reviewService) refreshAggregate(ctx context.Context, providerID uuid.UUID) {
	average, total, err := s.repo.Review.AggregateByProvider(ctx, providerID)
	if err != nil {
		s.log.Error("Failed to aggregate provider reviews",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return
	}

	if err := s.repo.Provider.UpdateRating(ctx, providerID, average, total); err != nil {
		s.log.Error("Failed to update provider rating",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
	}
}
