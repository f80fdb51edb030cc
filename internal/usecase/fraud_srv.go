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

type FraudService interface {
	// CheckBooking gathers activity signals for a booking attempt, evaluates
	// the rules, and appends an audit flag when suspicious. Never blocks.
	CheckBooking(ctx context.Context, customerID uuid.UUID, newLocation *Coordinate) (Verdict, error)

	// CheckPayment evaluates payment method churn after a change was recorded.
	CheckPayment(ctx context.Context, userID uuid.UUID) (Verdict, error)

	// GetUserFlags lists a user's fraud history. Admin only; enforced by the
	// caller.
	GetUserFlags(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FraudFlagResponse], error)
}

type fraudService struct {
	repo *repository.Repository
	cfg  utils.FraudConfig
	log  *zap.Logger
}

func NewFraudService(repo *repository.Repository, cfg utils.FraudConfig, log *zap.Logger) FraudService {
	return &fraudService{
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "fraud")),
	}
}

func (s *fraudService) CheckBooking(ctx context.Context, customerID uuid.UUID, newLocation *Coordinate) (Verdict, error) {
	now := time.Now()

	cancelled, err := s.repo.Booking.CountCancelledSince(ctx, customerID, now.Add(-s.cfg.CancellationWindow))
	if err != nil {
		return Verdict{}, fmt.Errorf("count cancellations: %w", err)
	}

	created, err := s.repo.Booking.CountCreatedSince(ctx, customerID, now.Add(-s.cfg.BookingFrequencyWindow))
	if err != nil {
		return Verdict{}, fmt.Errorf("count recent bookings: %w", err)
	}

	activity := BookingActivity{
		CancelledInWindow: cancelled,
		CreatedInWindow:   created,
		NewLocation:       newLocation,
	}

	if newLocation != nil {
		latest, err := s.repo.Booking.FindLatestByCustomer(ctx, customerID)
		if err != nil {
			return Verdict{}, fmt.Errorf("find latest booking: %w", err)
		}
		if latest != nil && latest.Latitude != nil && latest.Longitude != nil {
			activity.LastLocation = &Coordinate{Latitude: *latest.Latitude, Longitude: *latest.Longitude}
		}
	}

	verdict := EvaluateBooking(activity, s.cfg)
	if verdict.Suspicious {
		if err := s.appendFlag(ctx, customerID, entity.FraudSuspiciousBooking, verdict.Reasons); err != nil {
			// Flagging is audit, not enforcement. Log and move on.
			s.log.Error("Failed to append booking fraud flag",
				zap.Error(err),
				zap.String("user_id", customerID.String()),
			)
		}
	}

	return verdict, nil
}

func (s *fraudService) CheckPayment(ctx context.Context, userID uuid.UUID) (Verdict, error) {
	since := time.Now().Add(-s.cfg.PaymentChangeWindow)

	changes, err := s.repo.Fraud.CountPaymentMethodChangesSince(ctx, userID, since)
	if err != nil {
		return Verdict{}, fmt.Errorf("count payment method changes: %w", err)
	}

	verdict := EvaluatePayment(PaymentActivity{MethodChangesInWindow: int(changes)}, s.cfg)
	if verdict.Suspicious {
		if err := s.appendFlag(ctx, userID, entity.FraudSuspiciousPayment, verdict.Reasons); err != nil {
			s.log.Error("Failed to append payment fraud flag",
				zap.Error(err),
				zap.String("user_id", userID.String()),
			)
		}
	}

	return verdict, nil
}

func (s *fraudService) GetUserFlags(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FraudFlagResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	flags, err := s.repo.Fraud.FindFlagsByUser(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find fraud flags: %w", err)
	}

	total, err := s.repo.Fraud.CountFlagsByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count fraud flags: %w", err)
	}

	items := make([]response.FraudFlagResponse, len(flags))
	for i, flag := range flags {
		items[i] = response.FraudFlagToResponse(flag)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *fraudService) appendFlag(ctx context.Context, userID uuid.UUID, flagType entity.FraudFlagType, reasons []string) error {
	flag := &entity.FraudFlag{
		UserID:  userID,
		Type:    flagType,
		Reasons: reasons,
	}
	flag.ID = utils.GenerateUUID()
	flag.CreatedAt = time.Now()

	s.log.Warn("Fraud flag raised",
		zap.String("user_id", userID.String()),
		zap.String("flag_type", string(flagType)),
		zap.Strings("reasons", reasons),
	)

	return s.repo.Fraud.AppendFlag(ctx, flag)
}
