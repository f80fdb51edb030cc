package adaptor

import (
	"encoding/json"
	"net/http"

	"tasktakr/internal/dto/request"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LocationHandler struct {
	service usecase.LocationService
	log     *zap.Logger
}

func NewLocationHandler(service usecase.LocationService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		log:     log.With(zap.String("handler", "location")),
	}
}

// RecordPing handles POST /api/bookings/{id}/location (protected)
func (h *LocationHandler) RecordPing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.RecordLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ping, err := h.service.RecordPing(r.Context(), userID.String(), bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "record location")
		return
	}

	utils.ResponseCreated(w, "success", ping)
}

// GetLatest handles GET /api/bookings/{id}/location (protected)
func (h *LocationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	ping, err := h.service.GetLatest(r.Context(), userID.String(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get latest location")
		return
	}

	utils.ResponseSuccess(w, "success", ping)
}

// GetTrail handles GET /api/bookings/{id}/location/trail (protected)
func (h *LocationHandler) GetTrail(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), 100)

	trail, err := h.service.GetTrail(r.Context(), userID.String(), bookingID, limit)
	if err != nil {
		handleServiceError(h.log, w, err, "get location trail")
		return
	}

	utils.ResponseSuccess(w, "success", trail)
}
