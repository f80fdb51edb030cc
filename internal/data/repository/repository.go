package repository

import (
	"tasktakr/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Provider  ProviderRepository
	Service   ServiceRepository
	Booking   BookingRepository
	Promotion PromotionRepository
	Payment   PaymentRepository
	Invoice   InvoiceRepository
	Review    ReviewRepository
	Chat      ChatRepository
	Location  LocationRepository
	Fraud     FraudRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Provider:  NewProviderRepository(db, log),
		Service:   NewServiceRepository(db, log),
		Booking:   NewBookingRepository(db, log),
		Promotion: NewPromotionRepository(db, log),
		Payment:   NewPaymentRepository(db, log),
		Invoice:   NewInvoiceRepository(db, log),
		Review:    NewReviewRepository(db, log),
		Chat:      NewChatRepository(db, log),
		Location:  NewLocationRepository(db, log),
		Fraud:     NewFraudRepository(db, log),
	}
}
