package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tasktakr/internal/dto/request"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// webhookSignatureHeader is where the gateway puts the HMAC of the body.
const webhookSignatureHeader = "X-Webhook-Signature"

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// Initiate handles POST /api/payments (protected)
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.Initiate(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "initiate payment")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// Webhook handles POST /api/payments/webhook (public, signature-verified).
// The body must be read raw; the signature covers its exact bytes.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get(webhookSignatureHeader)
	if signature == "" {
		utils.ResponseUnauthorized(w, "Missing webhook signature")
		return
	}

	if err := h.service.HandleWebhook(r.Context(), rawBody, signature); err != nil {
		if errors.Is(err, usecase.ErrInvalidSignature) {
			utils.ResponseUnauthorized(w, "Invalid webhook signature")
			return
		}
		handleServiceError(h.log, w, err, "handle payment webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetPayment handles GET /api/payments/{id} (protected)
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		utils.ResponseBadRequest(w, "Payment ID is required", nil)
		return
	}

	payment, err := h.service.GetPayment(r.Context(), userID.String(), role, paymentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// GetUserPayments handles GET /api/payments (protected)
func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	payments, err := h.service.GetUserPayments(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get user payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}
