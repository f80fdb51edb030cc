package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/entity"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/users/me", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/users/me - Own profile
		r.Get("/", userHandler.GetProfile)

		// PUT /api/users/me - Update name/phone
		r.Put("/", userHandler.UpdateProfile)

		// PUT /api/users/me/push-token - Register device for push
		r.Put("/push-token", userHandler.SetPushToken)

		// PUT /api/users/me/payment-method - Change stored payment method
		r.Put("/payment-method", userHandler.ChangePaymentMethod)
	})

	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin), log))

		// GET /api/admin/users/{id}/fraud-flags - Fraud history (admin)
		r.Get("/{id}/fraud-flags", userHandler.GetUserFraudFlags)
	})
}
