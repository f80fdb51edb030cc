package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// GSTRate is the goods-and-services tax applied to service bookings, split
// evenly between the central and state components for an intra-state supply.
const GSTRate = 0.18

// Invoice is the billing record cut when a booking's payment settles. The
// invoice number is unique and never reused; amounts are frozen at
// generation time.
type Invoice struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	ProviderID    uuid.UUID     `db:"provider_id"`
	InvoiceNumber string        `db:"invoice_number"` // unique
	ServiceTitle  string        `db:"service_title"`
	Subtotal      float64       `db:"subtotal"`
	CGST          float64       `db:"cgst"`
	SGST          float64       `db:"sgst"`
	Total         float64       `db:"total"`
	Status        InvoiceStatus `db:"status"`
	Method        *string       `db:"method"`
}

// ComputeGST splits the GST on a taxable value into its central and state
// halves.
func ComputeGST(taxableValue float64) (cgst, sgst float64) {
	half := taxableValue * GSTRate / 2
	return half, half
}

// FormatInvoiceNumber renders the INV<year><month><sequence> shape used on
// every invoice.
func FormatInvoiceNumber(now time.Time, sequence int64) string {
	return fmt.Sprintf("INV%d%02d%04d", now.Year(), int(now.Month()), sequence)
}
