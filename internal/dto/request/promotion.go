package request

type CreatePromotionRequest struct {
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Code          string   `json:"code" validate:"required,min=3,max=30"`
	Type          string   `json:"type" validate:"required,oneof=FLAT PERCENTAGE FIRST_TIME"`
	Value         float64  `json:"value" validate:"required,gt=0"`
	MaxDiscount   *float64 `json:"max_discount,omitempty" validate:"omitempty,gt=0"`
	MinOrderValue float64  `json:"min_order_value" validate:"gte=0"`
	StartDate     string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	UsageLimit    int      `json:"usage_limit" validate:"required,min=1"`
	UserType      string   `json:"user_type" validate:"required,oneof=ALL NEW EXISTING"`
	Categories    []string `json:"categories,omitempty" validate:"omitempty,dive,min=2,max=50"`
	Cities        []string `json:"cities,omitempty" validate:"omitempty,dive,min=2,max=100"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=500"`
}

type ValidatePromotionRequest struct {
	Code       string  `json:"code" validate:"required,min=3,max=30"`
	OrderValue float64 `json:"order_value" validate:"required,gt=0"`
}

type ApplyPromotionRequest struct {
	Code      string `json:"code" validate:"required,min=3,max=30"`
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}
