package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is 1:1 with a booking. OrderID doubles as the gateway order id; it
// is created identical to the payment id at initiation.
type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	UserID        uuid.UUID     `db:"user_id"`
	OrderID       string        `db:"order_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID *string       `db:"transaction_id"`
	Method        *string       `db:"method"`
	RawPayload    []byte        `db:"raw_payload"` // webhook body stored verbatim for audit
}
