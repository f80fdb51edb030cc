package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// PartyKind discriminates the two sides of a booking conversation.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyProvider PartyKind = "provider"
)

func (k PartyKind) Valid() bool {
	return k == PartyCustomer || k == PartyProvider
}

// Party is a tagged reference to one side of a booking. It replaces free-text
// sender/receiver type strings with a closed set.
type Party struct {
	Kind PartyKind `db:"kind"`
	ID   uuid.UUID `db:"id"`
}

// PartyFor resolves which side of the booking the given user is on.
func PartyFor(b *Booking, userID uuid.UUID) (Party, error) {
	switch {
	case b.IsCustomer(userID):
		return Party{Kind: PartyCustomer, ID: userID}, nil
	case b.IsProvider(userID):
		return Party{Kind: PartyProvider, ID: userID}, nil
	default:
		return Party{}, fmt.Errorf("user %s is not a party on booking %s", userID, b.ID)
	}
}

// Counterpart returns the other side of the booking.
func (p Party) Counterpart(b *Booking) Party {
	if p.Kind == PartyCustomer {
		return Party{Kind: PartyProvider, ID: b.ProviderID}
	}
	return Party{Kind: PartyCustomer, ID: b.CustomerID}
}

type ChatMessage struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	Sender    Party
	Receiver  Party
	Body      string `db:"body"`
	Read      bool   `db:"read"`
}
