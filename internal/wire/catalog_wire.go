package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/entity"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, config *utils.Config, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - Browse active services
	r.Get("/api/services", catalogHandler.ListServices)

	// GET /api/services/{id} - Service detail
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// GET /api/providers/{id} - Provider profile with rating aggregate
	r.Get("/api/providers/{id}", catalogHandler.GetProvider)

	// ==================== PROVIDER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleProvider), log))

		// POST /api/providers/me - Create provider profile
		r.Post("/api/providers/me", catalogHandler.CreateProviderProfile)

		// PUT /api/providers/me - Update provider profile
		r.Put("/api/providers/me", catalogHandler.UpdateProviderProfile)

		// POST /api/providers/me/services - Publish a service
		r.Post("/api/providers/me/services", catalogHandler.CreateService)

		// GET /api/providers/me/services - Own services incl. inactive
		r.Get("/api/providers/me/services", catalogHandler.GetOwnServices)

		// PUT /api/providers/me/services/{id} - Edit a service
		r.Put("/api/providers/me/services/{id}", catalogHandler.UpdateService)

		// PUT /api/providers/me/availability - online/offline/busy toggle
		r.Put("/api/providers/me/availability", catalogHandler.SetAvailability)

		// GET /api/providers/me/dashboard - Monthly earnings, rating, upcoming jobs
		r.Get("/api/providers/me/dashboard", catalogHandler.GetDashboard)

		// GET /api/providers/me/earnings - Earnings over a named range
		r.Get("/api/providers/me/earnings", catalogHandler.GetEarnings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/providers", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin), log))

		// PUT /api/admin/providers/{id}/approval - Approve or reject
		r.Put("/{id}/approval", catalogHandler.SetApprovalStatus)
	})
}
