package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestPartyFor(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()

	booking := &Booking{
		CustomerID: customerID,
		ProviderID: providerID,
	}

	t.Run("customer side", func(t *testing.T) {
		party, err := PartyFor(booking, customerID)
		if err != nil {
			t.Fatalf("PartyFor: %v", err)
		}
		if party.Kind != PartyCustomer || party.ID != customerID {
			t.Errorf("got %+v, want customer %s", party, customerID)
		}
	})

	t.Run("provider side", func(t *testing.T) {
		party, err := PartyFor(booking, providerID)
		if err != nil {
			t.Fatalf("PartyFor: %v", err)
		}
		if party.Kind != PartyProvider || party.ID != providerID {
			t.Errorf("got %+v, want provider %s", party, providerID)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		if _, err := PartyFor(booking, uuid.New()); err == nil {
			t.Error("expected error for user not on the booking")
		}
	})
}

func TestPartyCounterpart(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()

	booking := &Booking{
		CustomerID: customerID,
		ProviderID: providerID,
	}

	customer := Party{Kind: PartyCustomer, ID: customerID}
	other := customer.Counterpart(booking)
	if other.Kind != PartyProvider || other.ID != providerID {
		t.Errorf("customer counterpart = %+v, want provider %s", other, providerID)
	}

	provider := Party{Kind: PartyProvider, ID: providerID}
	other = provider.Counterpart(booking)
	if other.Kind != PartyCustomer || other.ID != customerID {
		t.Errorf("provider counterpart = %+v, want customer %s", other, customerID)
	}
}
