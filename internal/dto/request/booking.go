package request

type CreateBookingRequest struct {
	ServiceID string   `json:"service_id" validate:"required,uuid4"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string   `json:"start_time" validate:"required"`
	PromoCode *string  `json:"promo_code,omitempty" validate:"omitempty,min=3,max=30"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

type TransitionBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}
