package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, config *utils.Config, log *zap.Logger) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/payments - Initiate checkout for a booking
		r.Post("/api/payments", paymentHandler.Initiate)

		// GET /api/payments - Own payment history
		r.Get("/api/payments", paymentHandler.GetUserPayments)

		// GET /api/payments/{id} - Payment detail
		r.Get("/api/payments/{id}", paymentHandler.GetPayment)
	})

	// ==================== GATEWAY CALLBACK ====================
	// Unauthenticated by design; trust comes from the body signature.
	r.Post("/api/payments/webhook", paymentHandler.Webhook)
}
