package main

import (
	"context"
	"log"

	"tasktakr/cmd"
	"tasktakr/internal/data/repository"
	gw "tasktakr/internal/gateway"
	"tasktakr/internal/notifier"
	"tasktakr/internal/queue"
	"tasktakr/internal/wire"
	"tasktakr/pkg/database"
	"tasktakr/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the booking rate limiter. A missing Redis degrades the
	// limiter to open rather than stopping the service.
	var rdb *redis.Client
	if config.Redis.RateLimitEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limiting disabled", zap.Error(err))
		}
	}

	// Broker connection for notification events; optional the same way.
	var publisher queue.Publisher = queue.NoopPublisher{}
	if config.Queue.URL != "" {
		p, err := queue.NewPublisher(config.Queue, logger)
		if err != nil {
			logger.Warn("Broker unreachable, events disabled", zap.Error(err))
		} else {
			publisher = p
			defer p.Close()
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway client
	gateway := gw.NewCashfreeClient(config.Gateway, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, gateway, publisher, rdb, logger)

	// Realtime hub owns room state; one goroutine for the lifetime of the
	// process.
	go app.Hub.Run()

	// Push notification worker consumes the event queue.
	if config.Queue.URL != "" {
		worker := notifier.NewWorker(config.Queue, repos.User, notifier.NewExpoPush(config.Push, logger), logger)
		go func() {
			if err := worker.Run(context.Background()); err != nil {
				logger.Error("Notification worker stopped", zap.Error(err))
			}
		}()
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
