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

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	SetPushToken(ctx context.Context, userID string, req *request.SetPushTokenRequest) error

	// ChangePaymentMethod stores the new method, records the change event,
	// and evaluates the payment fraud rule. The change always succeeds even
	// when flagged.
	ChangePaymentMethod(ctx context.Context, userID string, req *request.ChangePaymentMethodRequest) (*response.UserResponse, error)
}

type userService struct {
	repo  *repository.Repository
	fraud FraudService
	log   *zap.Logger
}

func NewUserService(repo *repository.Repository, fraud FraudService, log *zap.Logger) UserService {
	return &userService{
		repo:  repo,
		fraud: fraud,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) SetPushToken(ctx context.Context, userID string, req *request.SetPushTokenRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.User.UpdatePushToken(ctx, user.ID, &req.PushToken); err != nil {
		return fmt.Errorf("update push token: %w", err)
	}

	return nil
}

func (s *userService) ChangePaymentMethod(ctx context.Context, userID string, req *request.ChangePaymentMethodRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.UpdatePaymentMethod(ctx, user.ID, req.Method); err != nil {
		return nil, fmt.Errorf("update payment method: %w", err)
	}

	change := &entity.PaymentMethodChange{
		UserID: user.ID,
		Method: req.Method,
	}
	change.ID = utils.GenerateUUID()
	change.CreatedAt = time.Now()

	if err := s.repo.Fraud.RecordPaymentMethodChange(ctx, change); err != nil {
		// The change itself already landed; losing the audit event is
		// logged, not surfaced.
		s.log.Error("Failed to record payment method change",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	} else if _, err := s.fraud.CheckPayment(ctx, user.ID); err != nil {
		s.log.Error("Payment fraud check failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	user.PaymentMethod = &req.Method
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	return user, nil
}
