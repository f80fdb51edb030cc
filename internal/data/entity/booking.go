package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentState string

const (
	PaymentStateUnpaid PaymentState = "unpaid"
	PaymentStatePaid   PaymentState = "paid"
)

// bookingSuccessors is the canonical state graph. completed and cancelled are
// terminal.
var bookingSuccessors = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingSuccessors[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingSuccessors[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(bookingSuccessors[s]) == 0 && s.Valid()
}

// Booking is the aggregation root for payments, reviews, chat threads and
// location trails. ProviderID and TotalPrice are snapshotted from the service
// at creation time and never re-read.
type Booking struct {
	Base
	Ref          string        `db:"ref"`
	ServiceID    uuid.UUID     `db:"service_id"`
	CustomerID   uuid.UUID     `db:"customer_id"`
	ProviderID   uuid.UUID     `db:"provider_id"`
	Date         time.Time     `db:"date"`
	StartMinute  int           `db:"start_minute"`
	EndMinute    int           `db:"end_minute"`
	Status       BookingStatus `db:"status"`
	TotalPrice   float64       `db:"total_price"`
	Discount     float64       `db:"discount"`
	PromoCode    *string       `db:"promo_code"`
	PaymentState PaymentState  `db:"payment_state"`
	Notes        *string       `db:"notes"`
	Latitude     *float64      `db:"latitude"`
	Longitude    *float64      `db:"longitude"`
}

// IsCustomer reports whether the given user is the customer on the booking.
func (b *Booking) IsCustomer(userID uuid.UUID) bool {
	return b.CustomerID == userID
}

// IsProvider reports whether the given user is the provider on the booking.
func (b *Booking) IsProvider(userID uuid.UUID) bool {
	return b.ProviderID == userID
}

// IsParty reports whether the given user is named on the booking at all.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.IsCustomer(userID) || b.IsProvider(userID)
}
