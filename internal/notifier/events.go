package notifier

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for domain events on the topic exchange.
const (
	RouteBookingCreated   = "booking.created"
	RouteBookingUpdated   = "booking.updated"
	RouteBookingCancelled = "booking.cancelled"
	RoutePaymentSettled   = "payment.settled"
	RoutePaymentFailed    = "payment.failed"
	RouteChatMessage      = "chat.message"
)

// Event is the envelope carried on the broker. RecipientID names the user
// whose device should receive the push.
type Event struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	BookingID   uuid.UUID `json:"booking_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
