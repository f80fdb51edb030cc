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

type ChatHandler struct {
	service usecase.ChatService
	log     *zap.Logger
}

func NewChatHandler(service usecase.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With(zap.String("handler", "chat")),
	}
}

// SendMessage handles POST /api/bookings/{id}/messages (protected)
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
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

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID.String(), bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "send message")
		return
	}

	utils.ResponseCreated(w, "success", message)
}

// GetHistory handles GET /api/bookings/{id}/messages (protected)
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	messages, err := h.service.GetHistory(r.Context(), userID.String(), bookingID, req)
	if err != nil {
		handleServiceError(h.log, w, err, "get chat history")
		return
	}

	utils.ResponseSuccess(w, "success", messages)
}

// MarkRead handles PUT /api/bookings/{id}/messages/read (protected)
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.MarkRead(r.Context(), userID.String(), bookingID); err != nil {
		handleServiceError(h.log, w, err, "mark messages read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
