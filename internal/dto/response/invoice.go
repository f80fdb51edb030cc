package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type InvoiceResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	CustomerID    string    `json:"customer_id"`
	ProviderID    string    `json:"provider_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ServiceTitle  string    `json:"service_title"`
	Subtotal      float64   `json:"subtotal"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	Method        *string   `json:"method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func InvoiceToResponse(invoice *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID.String(),
		BookingID:     invoice.BookingID.String(),
		CustomerID:    invoice.CustomerID.String(),
		ProviderID:    invoice.ProviderID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		ServiceTitle:  invoice.ServiceTitle,
		Subtotal:      invoice.Subtotal,
		CGST:          invoice.CGST,
		SGST:          invoice.SGST,
		Total:         invoice.Total,
		Status:        string(invoice.Status),
		Method:        invoice.Method,
		CreatedAt:     invoice.CreatedAt,
	}
}
