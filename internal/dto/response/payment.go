package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	OrderID       string    `json:"order_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Method        *string   `json:"method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitiatedPaymentResponse carries the gateway session the client needs to
// complete checkout.
type InitiatedPaymentResponse struct {
	PaymentResponse
	PaymentSession string `json:"payment_session_id"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		OrderID:       payment.OrderID,
		Amount:        payment.Amount,
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		Method:        payment.Method,
		CreatedAt:     payment.CreatedAt,
	}
}
