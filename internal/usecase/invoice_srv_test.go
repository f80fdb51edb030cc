package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type invoiceRepoStub struct {
	repository.InvoiceRepository

	existing *entity.Invoice
	created  *entity.Invoice
	sequence int64
}

func (s *invoiceRepoStub) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	return s.existing, nil
}

func (s *invoiceRepoStub) Create(ctx context.Context, invoice *entity.Invoice) error {
	s.created = invoice
	return nil
}

func (s *invoiceRepoStub) NextSequence(ctx context.Context) (int64, error) {
	return s.sequence, nil
}

type invoiceBookingRepo struct {
	repository.BookingRepository

	booking *entity.Booking
}

func (s *invoiceBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if s.booking != nil && s.booking.ID == id {
		return s.booking, nil
	}
	return nil, nil
}

type invoiceServiceRepo struct {
	repository.ServiceRepository

	service *entity.Service
}

func (s *invoiceServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return s.service, nil
}

func TestGenerateForBooking(t *testing.T) {
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		ServiceID:  uuid.New(),
		CustomerID: uuid.New(),
		ProviderID: uuid.New(),
		TotalPrice: 1200,
		Discount:   200,
	}
	service := &entity.Service{
		Base:  entity.Base{ID: booking.ServiceID},
		Title: "Deep home cleaning",
	}
	method := "upi"

	newService := func(invoices *invoiceRepoStub) InvoiceService {
		repo := &repository.Repository{
			Invoice: invoices,
			Booking: &invoiceBookingRepo{booking: booking},
			Service: &invoiceServiceRepo{service: service},
		}
		return NewInvoiceService(repo, zap.NewNop())
	}

	t.Run("freezes GST totals at generation", func(t *testing.T) {
		invoices := &invoiceRepoStub{sequence: 7}
		svc := newService(invoices)

		got, err := svc.GenerateForBooking(context.Background(), booking.ID, &method)
		if err != nil {
			t.Fatalf("GenerateForBooking: %v", err)
		}
		if invoices.created == nil {
			t.Fatal("no invoice was persisted")
		}
		if got.Subtotal != 1000 {
			t.Errorf("subtotal = %.2f, want 1000 (price minus discount)", got.Subtotal)
		}
		if got.CGST != 90 || got.SGST != 90 {
			t.Errorf("cgst/sgst = %.2f/%.2f, want 90/90", got.CGST, got.SGST)
		}
		if got.Total != 1180 {
			t.Errorf("total = %.2f, want 1180", got.Total)
		}
		if got.Status != entity.InvoicePaid {
			t.Errorf("status = %s, want %s", got.Status, entity.InvoicePaid)
		}
		if got.ServiceTitle != service.Title {
			t.Errorf("service title = %q, want %q", got.ServiceTitle, service.Title)
		}
		if got.Method == nil || *got.Method != method {
			t.Errorf("method = %v, want %s", got.Method, method)
		}

		wantNumber := entity.FormatInvoiceNumber(time.Now(), 7)
		if got.InvoiceNumber != wantNumber {
			t.Errorf("invoice number = %s, want %s", got.InvoiceNumber, wantNumber)
		}
	})

	t.Run("returns the existing invoice on redelivery", func(t *testing.T) {
		existing := &entity.Invoice{
			Base:          entity.Base{ID: uuid.New()},
			BookingID:     booking.ID,
			InvoiceNumber: "INV2026080001",
		}
		invoices := &invoiceRepoStub{existing: existing, sequence: 99}
		svc := newService(invoices)

		got, err := svc.GenerateForBooking(context.Background(), booking.ID, &method)
		if err != nil {
			t.Fatalf("GenerateForBooking: %v", err)
		}
		if got != existing {
			t.Errorf("got a new invoice %s, want the existing one returned unchanged", got.InvoiceNumber)
		}
		if invoices.created != nil {
			t.Error("a second invoice was persisted for the same booking")
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newService(&invoiceRepoStub{sequence: 1})

		_, err := svc.GenerateForBooking(context.Background(), uuid.New(), nil)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Fatalf("err = %v, want booking not found", err)
		}
	})
}
