package adaptor

import (
	"net/http"
	"strings"

	"tasktakr/internal/usecase"
	"tasktakr/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Catalog   *CatalogHandler
	Booking   *BookingHandler
	Promotion *PromotionHandler
	Payment   *PaymentHandler
	Invoice   *InvoiceHandler
	Review    *ReviewHandler
	Chat      *ChatHandler
	Location  *LocationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, service.Fraud, log),
		Catalog:   NewCatalogHandler(service.Catalog, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Promotion: NewPromotionHandler(service.Promotion, log),
		Payment:   NewPaymentHandler(service.Payment, log),
		Invoice:   NewInvoiceHandler(service.Invoice, log),
		Review:    NewReviewHandler(service.Review, log),
		Chat:      NewChatHandler(service.Chat, log),
		Location:  NewLocationHandler(service.Location, log),
	}
}

// handleServiceError translates service errors into HTTP responses by
// message shape. Anything unrecognized is a 500 with a generic body.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no location recorded"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid credentials") || strings.Contains(errMsg, "deactivated"):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not visible to caller") ||
		strings.Contains(errMsg, "not owned by caller") ||
		strings.Contains(errMsg, "only the provider") ||
		strings.Contains(errMsg, "not approved"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed") ||
		strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "cannot") ||
		strings.Contains(errMsg, "already") ||
		strings.Contains(errMsg, "not applicable") ||
		strings.Contains(errMsg, "usage limit reached") ||
		strings.Contains(errMsg, "only completed") ||
		strings.Contains(errMsg, "requires a confirmed") ||
		strings.Contains(errMsg, "for new users only") ||
		strings.Contains(errMsg, "for existing users only") ||
		strings.Contains(errMsg, "required"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
