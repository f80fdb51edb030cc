package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/internal/gateway"
	"tasktakr/internal/notifier"
	"tasktakr/internal/queue"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidSignature marks a webhook whose signature did not verify. No
// state may change when it is returned.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// gatewayStatusPaid is the only order status treated as settled.
const gatewayStatusPaid = "PAID"

type PaymentService interface {
	Initiate(ctx context.Context, userID string, req *request.InitiatePaymentRequest) (*response.InitiatedPaymentResponse, error)

	// HandleWebhook verifies the signature over the raw body before decoding
	// anything, then reconciles the payment and cascades to the booking.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) error

	GetPayment(ctx context.Context, userID, role, paymentID string) (*response.PaymentResponse, error)
	GetUserPayments(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
}

type paymentService struct {
	repo      *repository.Repository
	gateway   gateway.Client
	cfg       utils.GatewayConfig
	publisher queue.Publisher
	invoices  InvoiceService
	log       *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw gateway.Client, cfg utils.GatewayConfig, publisher queue.Publisher, invoices InvoiceService, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		gateway:   gw,
		cfg:       cfg,
		publisher: publisher,
		invoices:  invoices,
		log:       log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Initiate(ctx context.Context, userID string, req *request.InitiatePaymentRequest) (*response.InitiatedPaymentResponse, error) {
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
	if booking.PaymentState == entity.PaymentStatePaid {
		return nil, fmt.Errorf("booking %s is already paid", req.BookingID)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("cannot pay for a cancelled booking")
	}

	existing, err := s.repo.Payment.FindByBookingID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if existing != nil && existing.Status == entity.PaymentStatusSuccess {
		return nil, fmt.Errorf("booking %s already has a settled payment", req.BookingID)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	amount := booking.TotalPrice - booking.Discount

	payment := &entity.Payment{
		BookingID: booking.ID,
		UserID:    userUUID,
		Amount:    amount,
		Status:    entity.PaymentStatusPending,
	}
	payment.ID = utils.GenerateUUID()
	payment.OrderID = payment.ID.String()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		OrderID:       payment.OrderID,
		OrderAmount:   amount,
		OrderCurrency: "INR",
		CustomerID:    userUUID.String(),
		CustomerPhone: phone,
	})
	if err != nil {
		// The local record exists but the gateway never saw the order.
		if markErr := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusFailed); markErr != nil {
			s.log.Error("Failed to mark orphaned payment failed",
				zap.Error(markErr),
				zap.String("payment_id", payment.ID.String()),
			)
		}
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	s.log.Info("Payment initiated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("amount", amount),
	)

	return &response.InitiatedPaymentResponse{
		PaymentResponse: response.PaymentToResponse(payment),
		PaymentSession:  order.PaymentSession,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if !gateway.VerifySignature(s.cfg.WebhookSecret, rawBody, signature) {
		s.log.Warn("Webhook signature mismatch")
		return ErrInvalidSignature
	}

	var payload request.WebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}
	if payload.Data.Order.OrderID == "" {
		return fmt.Errorf("webhook payload missing order id")
	}

	payment, err := s.repo.Payment.FindByOrderID(ctx, payload.Data.Order.OrderID)
	if err != nil {
		return fmt.Errorf("find payment by order: %w", err)
	}
	if payment == nil {
		return fmt.Errorf("payment for order %s not found", payload.Data.Order.OrderID)
	}

	// Gateways redeliver webhooks; a settled payment is left alone.
	if payment.Status != entity.PaymentStatusPending {
		s.log.Info("Ignoring webhook for settled payment",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", string(payment.Status)),
		)
		return nil
	}

	status := entity.PaymentStatusFailed
	if payload.Data.Order.OrderStatus == gatewayStatusPaid {
		status = entity.PaymentStatusSuccess
	}

	if err := s.repo.Payment.Reconcile(ctx, payment.ID, status,
		payload.Data.Payment.TransactionID, payload.Data.Payment.Method, rawBody); err != nil {
		return fmt.Errorf("reconcile payment: %w", err)
	}

	route := notifier.RoutePaymentFailed
	title := "Payment failed"
	body := "Your payment could not be completed"

	if status == entity.PaymentStatusSuccess {
		if err := s.repo.Booking.UpdatePaymentState(ctx, payment.BookingID, entity.PaymentStatePaid); err != nil {
			return fmt.Errorf("update booking payment state: %w", err)
		}
		route = notifier.RoutePaymentSettled
		title = "Payment received"
		body = "Your payment was successful"

		// The invoice is a byproduct of settlement; a failure here must not
		// fail the webhook, or the gateway would retry a reconciled payment.
		if _, err := s.invoices.GenerateForBooking(ctx, payment.BookingID, payload.Data.Payment.Method); err != nil {
			s.log.Error("Failed to generate invoice",
				zap.Error(err),
				zap.String("booking_id", payment.BookingID.String()),
			)
		}
	}

	s.log.Info("Payment reconciled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(status)),
	)

	event := notifier.Event{
		RecipientID: payment.UserID,
		Title:       title,
		Body:        body,
		BookingID:   payment.BookingID,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, route, event); err != nil {
		s.log.Warn("Failed to publish payment event",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
	}

	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, userID, role, paymentID string) (*response.PaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	paymentUUID, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment ID format %s: %w", paymentID, err)
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentUUID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	if payment.UserID != userUUID && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("payment %s is not visible to caller", paymentID)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetUserPayments(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	payments, err := s.repo.Payment.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	total, err := s.repo.Payment.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	items := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		items[i] = response.PaymentToResponse(payment)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
