package usecase

import (
	"tasktakr/internal/data/repository"
	"tasktakr/internal/gateway"
	"tasktakr/internal/queue"
	"tasktakr/internal/realtime"
	"tasktakr/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Catalog   CatalogService
	Booking   BookingService
	Promotion PromotionService
	Payment   PaymentService
	Invoice   InvoiceService
	Review    ReviewService
	Chat      ChatService
	Location  LocationService
	Fraud     FraudService
}

func NewService(repo *repository.Repository, config *utils.Config, gw gateway.Client, publisher queue.Publisher, hub *realtime.Hub, log *zap.Logger) *Service {
	fraud := NewFraudService(repo, config.Fraud, log)
	promotion := NewPromotionService(repo, log)
	invoice := NewInvoiceService(repo, log)

	return &Service{
		Auth:      NewAuthService(repo, config, log),
		User:      NewUserService(repo, fraud, log),
		Catalog:   NewCatalogService(repo, log),
		Booking:   NewBookingService(repo, fraud, promotion, publisher, config.App.Timezone, log),
		Promotion: promotion,
		Payment:   NewPaymentService(repo, gw, config.Gateway, publisher, invoice, log),
		Invoice:   invoice,
		Review:    NewReviewService(repo, log),
		Chat:      NewChatService(repo, hub, publisher, log),
		Location:  NewLocationService(repo, hub, log),
		Fraud:     fraud,
	}
}
