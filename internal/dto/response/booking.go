package response

import (
	"time"

	"tasktakr/internal/data/entity"
	"tasktakr/pkg/utils"
)

type BookingResponse struct {
	ID            string    `json:"id"`
	Ref           string    `json:"ref"`
	ServiceID     string    `json:"service_id"`
	CustomerID    string    `json:"customer_id"`
	ProviderID    string    `json:"provider_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	Discount      float64   `json:"discount"`
	PayableAmount float64   `json:"payable_amount"`
	PromoCode     *string   `json:"promo_code,omitempty"`
	PaymentState  string    `json:"payment_state"`
	Notes         *string   `json:"notes,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Service *ServiceResponse `json:"service,omitempty"`
	Payment *PaymentResponse `json:"payment,omitempty"`
	Review  *ReviewResponse  `json:"review,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		Ref:           booking.Ref,
		ServiceID:     booking.ServiceID.String(),
		CustomerID:    booking.CustomerID.String(),
		ProviderID:    booking.ProviderID.String(),
		Date:          booking.Date.Format("2006-01-02"),
		StartTime:     utils.FormatTimeOfDay(booking.StartMinute),
		EndTime:       utils.FormatTimeOfDay(booking.EndMinute),
		Status:        string(booking.Status),
		TotalPrice:    booking.TotalPrice,
		Discount:      booking.Discount,
		PayableAmount: booking.TotalPrice - booking.Discount,
		PromoCode:     booking.PromoCode,
		PaymentState:  string(booking.PaymentState),
		Notes:         booking.Notes,
		Latitude:      booking.Latitude,
		Longitude:     booking.Longitude,
		CreatedAt:     booking.CreatedAt,
	}
}
