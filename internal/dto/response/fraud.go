package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type FraudFlagResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Reasons   []string  `json:"reasons"`
	CreatedAt time.Time `json:"created_at"`
}

func FraudFlagToResponse(flag *entity.FraudFlag) FraudFlagResponse {
	return FraudFlagResponse{
		ID:        flag.ID.String(),
		UserID:    flag.UserID.String(),
		Type:      string(flag.Type),
		Reasons:   flag.Reasons,
		CreatedAt: flag.CreatedAt,
	}
}
