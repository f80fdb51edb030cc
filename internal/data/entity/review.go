package entity

import (
	"github.com/google/uuid"
)

// Review is 1:1 with a completed booking. The bookings unique index backs the
// application-level duplicate pre-check.
type Review struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	UserID     uuid.UUID `db:"user_id"`
	ProviderID uuid.UUID `db:"provider_id"`
	Rating     int       `db:"rating"` // 1-5
	Comment    *string   `db:"comment"`
}
