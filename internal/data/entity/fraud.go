package entity

import (
	"github.com/google/uuid"
)

type FraudFlagType string

const (
	FraudSuspiciousBooking FraudFlagType = "suspicious_booking"
	FraudSuspiciousPayment FraudFlagType = "payment_suspicious"
)

// FraudFlag is one append-only audit entry in a user's fraud history. Flags
// are advisory; they never block the action that triggered them.
type FraudFlag struct {
	BaseSimple
	UserID  uuid.UUID     `db:"user_id"`
	Type    FraudFlagType `db:"type"`
	Reasons []string      `db:"reasons"`
}

// PaymentMethodChange is one append-only event feeding the payment fraud rule.
type PaymentMethodChange struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Method string    `db:"method"`
}
