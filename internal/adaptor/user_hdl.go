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

type UserHandler struct {
	service usecase.UserService
	fraud   usecase.FraudService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, fraud usecase.FraudService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		fraud:   fraud,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/me (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateProfile handles PUT /api/users/me (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// SetPushToken handles PUT /api/users/me/push-token (protected)
func (h *UserHandler) SetPushToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetPushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetPushToken(r.Context(), userID.String(), &req); err != nil {
		handleServiceError(h.log, w, err, "set push token")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ChangePaymentMethod handles PUT /api/users/me/payment-method (protected)
func (h *UserHandler) ChangePaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ChangePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.ChangePaymentMethod(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "change payment method")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// GetUserFraudFlags handles GET /api/admin/users/{id}/fraud-flags (admin only)
func (h *UserHandler) GetUserFraudFlags(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	flags, err := h.fraud.GetUserFlags(r.Context(), userID, req)
	if err != nil {
		handleServiceError(h.log, w, err, "get user fraud flags")
		return
	}

	utils.ResponseSuccess(w, "success", flags)
}
