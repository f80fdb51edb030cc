package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/entity"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, config *utils.Config, log *zap.Logger) {
	// GET /api/providers/{id}/reviews - Provider's reviews (public)
	r.Get("/api/providers/{id}/reviews", reviewHandler.GetProviderReviews)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/reviews - Review a completed booking
		r.Post("/api/reviews", reviewHandler.CreateReview)
	})

	r.Route("/api/admin/reviews", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin), log))

		// DELETE /api/admin/reviews/{id} - Remove a review (moderation)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
