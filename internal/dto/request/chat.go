package request

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type RecordLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
