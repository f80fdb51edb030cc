package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestBookingStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed skips confirmation", BookingStatusPending, BookingStatusCompleted, false},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed back to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"cancelled cannot revive", BookingStatusCancelled, BookingStatusPending, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
		{"unknown source", BookingStatus("unknown"), BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, false},
		{BookingStatusConfirmed, false},
		{BookingStatusCompleted, true},
		{BookingStatusCancelled, true},
		{BookingStatus("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false, want true", s)
		}
	}
	if BookingStatus("paid").Valid() {
		t.Error("Valid(paid) = true, want false")
	}
}

func TestBookingParties(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()
	strangerID := uuid.New()

	booking := &Booking{
		CustomerID: customerID,
		ProviderID: providerID,
	}

	if !booking.IsCustomer(customerID) {
		t.Error("IsCustomer(customer) = false, want true")
	}
	if booking.IsCustomer(providerID) {
		t.Error("IsCustomer(provider) = true, want false")
	}
	if !booking.IsProvider(providerID) {
		t.Error("IsProvider(provider) = false, want true")
	}
	if !booking.IsParty(customerID) {
		t.Error("IsParty(customer) = false, want true")
	}
	if !booking.IsParty(providerID) {
		t.Error("IsParty(provider) = false, want true")
	}
	if booking.IsParty(strangerID) {
		t.Error("IsParty(stranger) = true, want false")
	}
}
