package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/entity"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePromotion(r chi.Router, promotionHandler *adaptor.PromotionHandler, config *utils.Config, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/promotions - Active promotions
		r.Get("/api/promotions", promotionHandler.ListActive)

		// POST /api/promotions/validate - Quote a code without redeeming
		r.Post("/api/promotions/validate", promotionHandler.Validate)

		// POST /api/promotions/apply - Redeem against a pending booking
		r.Post("/api/promotions/apply", promotionHandler.Apply)
	})

	r.Route("/api/admin/promotions", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin), log))

		// POST /api/admin/promotions - Create a promotion (admin)
		r.Post("/", promotionHandler.CreatePromotion)
	})
}
