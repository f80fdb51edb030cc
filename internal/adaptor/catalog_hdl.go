package adaptor

import (
	"encoding/json"
	"net/http"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services (public)
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListServicesRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Category: query.Get("category"),
	}

	services, err := h.service.ListServices(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id} (public)
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	service, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		handleServiceError(h.log, w, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetProvider handles GET /api/providers/{id} (public)
func (h *CatalogHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")
	if providerID == "" {
		utils.ResponseBadRequest(w, "Provider ID is required", nil)
		return
	}

	provider, err := h.service.GetProvider(r.Context(), providerID)
	if err != nil {
		handleServiceError(h.log, w, err, "get provider")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// CreateProviderProfile handles POST /api/providers/me (provider role)
func (h *CatalogHandler) CreateProviderProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateProviderProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	provider, err := h.service.CreateProviderProfile(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create provider profile")
		return
	}

	utils.ResponseCreated(w, "success", provider)
}

// UpdateProviderProfile handles PUT /api/providers/me (provider role)
func (h *CatalogHandler) UpdateProviderProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProviderProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	provider, err := h.service.UpdateProviderProfile(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update provider profile")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// CreateService handles POST /api/providers/me/services (provider role)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.CreateService(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/providers/me/services/{id} (provider role)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.UpdateService(r.Context(), userID.String(), serviceID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetOwnServices handles GET /api/providers/me/services (provider role)
func (h *CatalogHandler) GetOwnServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	services, err := h.service.GetOwnServices(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get own services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// SetAvailability handles PUT /api/providers/me/availability (provider role)
func (h *CatalogHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	provider, err := h.service.SetAvailability(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "set availability")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// GetDashboard handles GET /api/providers/me/dashboard (provider role)
func (h *CatalogHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// GetEarnings handles GET /api/providers/me/earnings?range=daily|weekly|monthly|yearly
// (provider role)
func (h *CatalogHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	earnings, err := h.service.GetEarnings(r.Context(), userID.String(), r.URL.Query().Get("range"))
	if err != nil {
		handleServiceError(h.log, w, err, "get earnings")
		return
	}

	utils.ResponseSuccess(w, "success", earnings)
}

// SetApprovalStatus handles PUT /api/admin/providers/{id}/approval (admin only)
func (h *CatalogHandler) SetApprovalStatus(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")
	if providerID == "" {
		utils.ResponseBadRequest(w, "Provider ID is required", nil)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=approved rejected pending"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	provider, err := h.service.SetApprovalStatus(r.Context(), providerID, entity.ApprovalStatus(req.Status))
	if err != nil {
		handleServiceError(h.log, w, err, "set approval status")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}
