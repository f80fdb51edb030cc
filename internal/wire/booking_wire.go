package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/entity"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, config *utils.Config, rdb *redis.Client, log *zap.Logger) {
	// ==================== CUSTOMER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		// Booking creation is the abuse-prone endpoint; it gets the token
		// bucket on top of auth.
		r.Use(middleware.RateLimit(config.Redis, rdb, log))

		// POST /api/bookings - Create a booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/bookings - Own booking history
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking detail (parties and admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/status - Confirm, complete or cancel
		r.Put("/api/bookings/{id}/status", bookingHandler.TransitionBooking)
	})

	// ==================== PROVIDER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(string(entity.RoleProvider), log))

		// GET /api/providers/me/bookings - Incoming jobs
		r.Get("/api/providers/me/bookings", bookingHandler.GetProviderBookings)
	})
}
