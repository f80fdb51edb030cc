package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/internal/realtime"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireChat(
	r chi.Router,
	chatHandler *adaptor.ChatHandler,
	locationHandler *adaptor.LocationHandler,
	wsHandler *realtime.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/bookings/{id}/messages - Send a message
		r.Post("/api/bookings/{id}/messages", chatHandler.SendMessage)

		// GET /api/bookings/{id}/messages - Thread history, newest first
		r.Get("/api/bookings/{id}/messages", chatHandler.GetHistory)

		// PUT /api/bookings/{id}/messages/read - Mark own inbox read
		r.Put("/api/bookings/{id}/messages/read", chatHandler.MarkRead)

		// POST /api/bookings/{id}/location - Record a location ping
		r.Post("/api/bookings/{id}/location", locationHandler.RecordPing)

		// GET /api/bookings/{id}/location - Latest ping
		r.Get("/api/bookings/{id}/location", locationHandler.GetLatest)

		// GET /api/bookings/{id}/location/trail - Recent trail
		r.Get("/api/bookings/{id}/location/trail", locationHandler.GetTrail)

		// GET /ws/bookings/{bookingId} - Live chat and location stream
		r.Get("/ws/bookings/{bookingId}", wsHandler.ServeWS)
	})
}
