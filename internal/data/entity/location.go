package entity

import (
	"github.com/google/uuid"
)

// LocationPing is one point of the durable location trail for a booking.
type LocationPing struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	UserID    uuid.UUID `db:"user_id"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
}
