package usecase

import (
	"context"
	"fmt"
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/internal/data/repository"
	"tasktakr/internal/dto/request"
	"tasktakr/internal/dto/response"
	"tasktakr/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceService interface {
	// GenerateForBooking cuts the invoice for a settled booking. Calling it
	// again for the same booking returns the existing invoice unchanged.
	GenerateForBooking(ctx context.Context, bookingID uuid.UUID, method *string) (*entity.Invoice, error)

	GetByBooking(ctx context.Context, userID, role, bookingID string) (*response.InvoiceResponse, error)
	ListOwn(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InvoiceResponse], error)
}

type invoiceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInvoiceService(repo *repository.Repository, log *zap.Logger) InvoiceService {
	return &invoiceService{
		repo: repo,
		log:  log.With(zap.String("service", "invoice")),
	}
}

func (s *invoiceService) GenerateForBooking(ctx context.Context, bookingID uuid.UUID, method *string) (*entity.Invoice, error) {
	existing, err := s.repo.Invoice.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find existing invoice: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	serviceTitle := ""
	if service, err := s.repo.Service.FindByID(ctx, booking.ServiceID); err == nil && service != nil {
		serviceTitle = service.Title
	}

	sequence, err := s.repo.Invoice.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("next invoice sequence: %w", err)
	}

	subtotal := booking.TotalPrice - booking.Discount
	cgst, sgst := entity.ComputeGST(subtotal)

	invoice := &entity.Invoice{
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		ProviderID:    booking.ProviderID,
		InvoiceNumber: entity.FormatInvoiceNumber(time.Now(), sequence),
		ServiceTitle:  serviceTitle,
		Subtotal:      subtotal,
		CGST:          cgst,
		SGST:          sgst,
		Total:         subtotal + cgst + sgst,
		Status:        entity.InvoicePaid,
		Method:        method,
	}
	invoice.ID = utils.GenerateUUID()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt

	if err := s.repo.Invoice.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.log.Info("Invoice generated",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("booking_id", bookingID.String()),
		zap.Float64("total", invoice.Total),
	)

	return invoice, nil
}

func (s *invoiceService) GetByBooking(ctx context.Context, userID, role, bookingID string) (*response.InvoiceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	invoice, err := s.repo.Invoice.FindByBookingID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if invoice == nil {
		return nil, fmt.Errorf("invoice for booking %s not found", bookingID)
	}

	if invoice.CustomerID != userUUID && invoice.ProviderID != userUUID && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("invoice for booking %s is not visible to caller", bookingID)
	}

	resp := response.InvoiceToResponse(invoice)
	return &resp, nil
}

func (s *invoiceService) ListOwn(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InvoiceResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	var invoices []*entity.Invoice
	var total int64

	if role == string(entity.RoleProvider) {
		invoices, err = s.repo.Invoice.FindByProviderID(ctx, userUUID, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Invoice.CountByProviderID(ctx, userUUID)
		}
	} else {
		invoices, err = s.repo.Invoice.FindByCustomerID(ctx, userUUID, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Invoice.CountByCustomerID(ctx, userUUID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	items := make([]response.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		items[i] = response.InvoiceToResponse(invoice)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
