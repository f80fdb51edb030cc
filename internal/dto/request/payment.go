package request

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

// WebhookPayload is the gateway's order callback shape. It is decoded only
// after the signature on the raw body has been verified.
type WebhookPayload struct {
	Data WebhookData `json:"data"`
}

type WebhookData struct {
	Order   WebhookOrder   `json:"order"`
	Payment WebhookPayment `json:"payment"`
}

type WebhookOrder struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
}

type WebhookPayment struct {
	TransactionID *string `json:"cf_payment_id,omitempty"`
	Method        *string `json:"payment_method,omitempty"`
}
