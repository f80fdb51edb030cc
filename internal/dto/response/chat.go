package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type ChatMessageResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	SenderKind string    `json:"sender_kind"`
	SenderID   string    `json:"sender_id"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

type LocationPingResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func ChatMessageToResponse(message *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         message.ID.String(),
		BookingID:  message.BookingID.String(),
		SenderKind: string(message.Sender.Kind),
		SenderID:   message.Sender.ID.String(),
		Body:       message.Body,
		Read:       message.Read,
		CreatedAt:  message.CreatedAt,
	}
}

func LocationPingToResponse(ping *entity.LocationPing) LocationPingResponse {
	return LocationPingResponse{
		ID:        ping.ID.String(),
		BookingID: ping.BookingID.String(),
		UserID:    ping.UserID.String(),
		Latitude:  ping.Latitude,
		Longitude: ping.Longitude,
		CreatedAt: ping.CreatedAt,
	}
}
