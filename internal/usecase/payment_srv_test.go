package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/gateway"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stubs embed the repository interfaces so only the methods a test exercises
// need bodies. Anything else panics, which is the point.

type stubPaymentRepo struct {
	repository.PaymentRepository

	payment *entity.Payment

	reconciled       bool
	reconciledStatus entity.PaymentStatus
}

func (s *stubPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	if s.payment == nil || s.payment.OrderID != orderID {
		return nil, nil
	}
	return s.payment, nil
}

func (s *stubPaymentRepo) Reconcile(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, transactionID, method *string, rawPayload []byte) error {
	s.reconciled = true
	s.reconciledStatus = status
	return nil
}

type stubBookingRepo struct {
	repository.BookingRepository

	paymentStateSet *entity.PaymentState
}

func (s *stubBookingRepo) UpdatePaymentState(ctx context.Context, bookingID uuid.UUID, state entity.PaymentState) error {
	s.paymentStateSet = &state
	return nil
}

type recordPublisher struct {
	routes []string
}

func (p *recordPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	p.routes = append(p.routes, routingKey)
	return nil
}

func (p *recordPublisher) Close() error { return nil }

type recordInvoiceService struct {
	InvoiceService

	generatedFor []uuid.UUID
}

func (s *recordInvoiceService) GenerateForBooking(ctx context.Context, bookingID uuid.UUID, method *string) (*entity.Invoice, error) {
	s.generatedFor = append(s.generatedFor, bookingID)
	return &entity.Invoice{BookingID: bookingID}, nil
}

func webhookBody(t *testing.T, orderID, orderStatus string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"order": map[string]any{
				"order_id":     orderID,
				"order_status": orderStatus,
			},
			"payment": map[string]any{
				"cf_payment_id":  "cf_123",
				"payment_method": "upi",
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal webhook body: %v", err)
	}
	return body
}

func TestHandleWebhook(t *testing.T) {
	const secret = "webhook-secret"
	cfg := utils.GatewayConfig{WebhookSecret: secret}

	orderID := uuid.New().String()

	newPayment := func(status entity.PaymentStatus) *entity.Payment {
		return &entity.Payment{
			Base:      entity.Base{ID: uuid.New()},
			BookingID: uuid.New(),
			UserID:    uuid.New(),
			OrderID:   orderID,
			Amount:    500,
			Status:    status,
		}
	}

	newService := func(payments *stubPaymentRepo, bookings *stubBookingRepo, publisher *recordPublisher, invoices *recordInvoiceService) PaymentService {
		repo := &repository.Repository{Payment: payments, Booking: bookings}
		return NewPaymentService(repo, nil, cfg, publisher, invoices, zap.NewNop())
	}

	t.Run("rejects bad signature without touching state", func(t *testing.T) {
		payments := &stubPaymentRepo{payment: newPayment(entity.PaymentStatusPending)}
		bookings := &stubBookingRepo{}
		svc := newService(payments, bookings, &recordPublisher{}, &recordInvoiceService{})

		body := webhookBody(t, orderID, "PAID")
		err := svc.HandleWebhook(context.Background(), body, "forged")
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("err = %v, want ErrInvalidSignature", err)
		}
		if payments.reconciled {
			t.Error("payment was reconciled despite bad signature")
		}
		if bookings.paymentStateSet != nil {
			t.Error("booking payment state changed despite bad signature")
		}
	})

	t.Run("settles a paid order", func(t *testing.T) {
		payments := &stubPaymentRepo{payment: newPayment(entity.PaymentStatusPending)}
		bookings := &stubBookingRepo{}
		publisher := &recordPublisher{}
		invoices := &recordInvoiceService{}
		svc := newService(payments, bookings, publisher, invoices)

		body := webhookBody(t, orderID, "PAID")
		if err := svc.HandleWebhook(context.Background(), body, gateway.ComputeSignature(secret, body)); err != nil {
			t.Fatalf("HandleWebhook: %v", err)
		}
		if payments.reconciledStatus != entity.PaymentStatusSuccess {
			t.Errorf("reconciled status = %s, want success", payments.reconciledStatus)
		}
		if bookings.paymentStateSet == nil || *bookings.paymentStateSet != entity.PaymentStatePaid {
			t.Errorf("booking payment state = %v, want paid", bookings.paymentStateSet)
		}
		if len(publisher.routes) != 1 || publisher.routes[0] != "payment.settled" {
			t.Errorf("published routes = %v, want [payment.settled]", publisher.routes)
		}
		if len(invoices.generatedFor) != 1 || invoices.generatedFor[0] != payments.payment.BookingID {
			t.Errorf("invoices generated for %v, want [%s]", invoices.generatedFor, payments.payment.BookingID)
		}
	})

	t.Run("fails any other order status", func(t *testing.T) {
		payments := &stubPaymentRepo{payment: newPayment(entity.PaymentStatusPending)}
		bookings := &stubBookingRepo{}
		publisher := &recordPublisher{}
		invoices := &recordInvoiceService{}
		svc := newService(payments, bookings, publisher, invoices)

		body := webhookBody(t, orderID, "EXPIRED")
		if err := svc.HandleWebhook(context.Background(), body, gateway.ComputeSignature(secret, body)); err != nil {
			t.Fatalf("HandleWebhook: %v", err)
		}
		if payments.reconciledStatus != entity.PaymentStatusFailed {
			t.Errorf("reconciled status = %s, want failed", payments.reconciledStatus)
		}
		if bookings.paymentStateSet != nil {
			t.Error("booking marked paid on a failed order")
		}
		if len(invoices.generatedFor) != 0 {
			t.Error("invoice generated for a failed order")
		}
		if len(publisher.routes) != 1 || publisher.routes[0] != "payment.failed" {
			t.Errorf("published routes = %v, want [payment.failed]", publisher.routes)
		}
	})

	t.Run("ignores redelivery for a settled payment", func(t *testing.T) {
		payments := &stubPaymentRepo{payment: newPayment(entity.PaymentStatusSuccess)}
		bookings := &stubBookingRepo{}
		publisher := &recordPublisher{}
		svc := newService(payments, bookings, publisher, &recordInvoiceService{})

		body := webhookBody(t, orderID, "PAID")
		if err := svc.HandleWebhook(context.Background(), body, gateway.ComputeSignature(secret, body)); err != nil {
			t.Fatalf("HandleWebhook: %v", err)
		}
		if payments.reconciled {
			t.Error("settled payment was reconciled again")
		}
		if len(publisher.routes) != 0 {
			t.Errorf("published routes = %v, want none", publisher.routes)
		}
	})

	t.Run("unknown order id", func(t *testing.T) {
		payments := &stubPaymentRepo{}
		svc := newService(payments, &stubBookingRepo{}, &recordPublisher{}, &recordInvoiceService{})

		body := webhookBody(t, orderID, "PAID")
		if err := svc.HandleWebhook(context.Background(), body, gateway.ComputeSignature(secret, body)); err == nil {
			t.Fatal("expected error for unknown order")
		}
	})
}
