package usecase

import (
	"fmt"
	"math"

	"tasktakr/pkg/utils"
)

// Fraud rule names recorded in flag reasons.
const (
	RuleExcessiveCancellations = "excessive_cancellations"
	RuleHighBookingFrequency   = "high_booking_frequency"
	RuleSuspiciousLocation     = "suspicious_location_change"
	RuleFrequentPaymentChanges = "frequent_payment_method_changes"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Coordinate is a latitude/longitude pair used by the location rule.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// BookingActivity is the signal set for evaluating a booking attempt. The
// fields are gathered by the caller so the rules stay free of I/O.
type BookingActivity struct {
	CancelledInWindow int
	CreatedInWindow   int
	LastLocation      *Coordinate
	NewLocation       *Coordinate
}

// PaymentActivity is the signal set for evaluating payment method churn.
type PaymentActivity struct {
	MethodChangesInWindow int
}

// Verdict is the outcome of a rule evaluation. Verdicts are advisory: they
// produce audit flags but never block the triggering action.
type Verdict struct {
	Suspicious bool
	Reasons    []string
}

// EvaluateBooking runs the booking-side fraud rules against the gathered
// activity.
func EvaluateBooking(activity BookingActivity, cfg utils.FraudConfig) Verdict {
	var reasons []string

	if activity.CancelledInWindow >= cfg.CancellationThreshold {
		reasons = append(reasons, fmt.Sprintf("%s: %d cancellations in window",
			RuleExcessiveCancellations, activity.CancelledInWindow))
	}

	if activity.CreatedInWindow >= cfg.BookingFrequencyThreshold {
		reasons = append(reasons, fmt.Sprintf("%s: %d bookings in window",
			RuleHighBookingFrequency, activity.CreatedInWindow))
	}

	if activity.LastLocation != nil && activity.NewLocation != nil {
		distance := Haversine(
			activity.LastLocation.Latitude, activity.LastLocation.Longitude,
			activity.NewLocation.Latitude, activity.NewLocation.Longitude,
		)
		if distance > cfg.LocationChangeKm {
			reasons = append(reasons, fmt.Sprintf("%s: %.1f km from previous booking",
				RuleSuspiciousLocation, distance))
		}
	}

	return Verdict{Suspicious: len(reasons) > 0, Reasons: reasons}
}

// EvaluatePayment runs the payment-side fraud rule.
func EvaluatePayment(activity PaymentActivity, cfg utils.FraudConfig) Verdict {
	var reasons []string

	if activity.MethodChangesInWindow >= cfg.PaymentChangeThreshold {
		reasons = append(reasons, fmt.Sprintf("%s: %d changes in window",
			RuleFrequentPaymentChanges, activity.MethodChangesInWindow))
	}

	return Verdict{Suspicious: len(reasons) > 0, Reasons: reasons}
}
