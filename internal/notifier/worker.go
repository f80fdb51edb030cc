package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"tasktakr/internal/data/repository"
	"tasktakr/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker consumes domain events off the broker and fans them out as push
// notifications. Delivery failures are logged and swallowed so a dead
// device token never blocks the queue.
type Worker struct {
	cfg      utils.QueueConfig
	userRepo repository.UserRepository
	sender   PushSender
	log      *zap.Logger
}

func NewWorker(cfg utils.QueueConfig, userRepo repository.UserRepository, sender PushSender, log *zap.Logger) *Worker {
	return &Worker{
		cfg:      cfg,
		userRepo: userRepo,
		sender:   sender,
		log:      log.With(zap.String("queue", "notifier_worker")),
	}
}

// Run blocks consuming events until the context is cancelled or the
// broker connection drops.
func (w *Worker) Run(ctx context.Context) error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial amqp broker: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer channel.Close()

	if err := channel.ExchangeDeclare(w.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", w.cfg.Exchange, err)
	}

	queue, err := channel.QueueDeclare(w.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", w.cfg.Queue, err)
	}

	// Every event type feeds the same notification queue.
	if err := channel.QueueBind(queue.Name, "#", w.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue.Name, err)
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %s: %w", queue.Name, err)
	}

	w.log.Info("Notification worker started", zap.String("queue", queue.Name))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *Worker) handle(ctx context.Context, delivery amqp.Delivery) {
	defer delivery.Ack(false)

	var event Event
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.log.Warn("Discarding malformed event",
			zap.Error(err),
			zap.String("routing_key", delivery.RoutingKey),
		)
		return
	}

	user, err := w.userRepo.FindByID(ctx, event.RecipientID)
	if err != nil {
		w.log.Error("Failed to resolve event recipient",
			zap.Error(err),
			zap.String("recipient_id", event.RecipientID.String()),
		)
		return
	}
	if user == nil || user.PushToken == nil || *user.PushToken == "" {
		return
	}

	if err := w.sender.Send(ctx, *user.PushToken, event.Title, event.Body); err != nil {
		w.log.Warn("Failed to deliver push notification",
			zap.Error(err),
			zap.String("recipient_id", event.RecipientID.String()),
			zap.String("routing_key", delivery.RoutingKey),
		)
	}
}
