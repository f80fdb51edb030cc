package request

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

type SetPushTokenRequest struct {
	PushToken string `json:"push_token" validate:"required,min=1,max=255"`
}

type ChangePaymentMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=card upi netbanking wallet cod"`
}
