package adaptor

import (
	"encoding/json"
	"net/http"

	"tasktakr/internal/dto/request"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"go.uber.org/zap"
)

type PromotionHandler struct {
	service usecase.PromotionService
	log     *zap.Logger
}

func NewPromotionHandler(service usecase.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log.With(zap.String("handler", "promotion")),
	}
}

// CreatePromotion handles POST /api/admin/promotions (admin only)
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	promotion, err := h.service.CreatePromotion(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create promotion")
		return
	}

	utils.ResponseCreated(w, "success", promotion)
}

// ListActive handles GET /api/promotions (protected)
func (h *PromotionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promotions)
}

// Validate handles POST /api/promotions/validate (protected)
func (h *PromotionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ValidatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	quote, err := h.service.Validate(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate promotion")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// Apply handles POST /api/promotions/apply (protected)
func (h *PromotionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ApplyPromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	applied, err := h.service.Apply(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "apply promotion")
		return
	}

	utils.ResponseSuccess(w, "success", applied)
}
