package wire

import (
	"net/http"

	"tasktakr/internal/adaptor"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/gateway"
	"tasktakr/internal/queue"
	"tasktakr/internal/realtime"
	"tasktakr/internal/usecase"
	"tasktakr/pkg/middleware"
	"tasktakr/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
	Hub    *realtime.Hub
}

// Wiring builds the service graph and mounts every route.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	gw gateway.Client,
	publisher queue.Publisher,
	rdb *redis.Client,
	logger *zap.Logger,
) *App {
	hub := realtime.NewHub(logger)

	service := usecase.NewService(repo, config, gw, publisher, hub, logger)
	handler := adaptor.NewHandler(service, logger)
	wsHandler := realtime.NewHandler(hub, repo.Booking, logger)

	router := setupRouter(handler, wsHandler, config, rdb, logger)

	return &App{
		Router: router,
		Hub:    hub,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	wsHandler *realtime.Handler,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, config, logger)
	wireCatalog(r, handler.Catalog, config, logger)
	wireBooking(r, handler.Booking, config, rdb, logger)
	wirePromotion(r, handler.Promotion, config, logger)
	wirePayment(r, handler.Payment, config, logger)
	wireInvoice(r, handler.Invoice, config, logger)
	wireReview(r, handler.Review, config, logger)
	wireChat(r, handler.Chat, handler.Location, wsHandler, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
