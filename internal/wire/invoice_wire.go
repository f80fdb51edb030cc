package wire

import (
	"tasktakr/internal/adaptor"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireInvoice(r chi.Router, invoiceHandler *adaptor.InvoiceHandler, config *utils.Config, log *zap.Logger) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/invoices - Own invoices (customer or provider side)
		r.Get("/api/invoices", invoiceHandler.ListOwn)

		// GET /api/invoices/booking/{bookingId} - Invoice for a booking
		r.Get("/api/invoices/booking/{bookingId}", invoiceHandler.GetByBooking)
	})
}
