package adaptor

import (
	"net/http"

	"tasktakr/internal/dto/request"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	service usecase.InvoiceService
	log     *zap.Logger
}

func NewInvoiceHandler(service usecase.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log.With(zap.String("handler", "invoice")),
	}
}

// GetByBooking handles GET /api/invoices/booking/{bookingId} (protected)
func (h *InvoiceHandler) GetByBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "bookingId")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	invoice, err := h.service.GetByBooking(r.Context(), userID.String(), role, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get invoice")
		return
	}

	utils.ResponseSuccess(w, "success", invoice)
}

// ListOwn handles GET /api/invoices (protected)
func (h *InvoiceHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	invoices, err := h.service.ListOwn(r.Context(), userID.String(), role, req)
	if err != nil {
		handleServiceError(h.log, w, err, "list invoices")
		return
	}

	utils.ResponseSuccess(w, "success", invoices)
}
