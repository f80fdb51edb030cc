package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type ProviderResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Category       string    `json:"category"`
	City           string    `json:"city"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ApprovalStatus string    `json:"approval_status"`
	Availability   string    `json:"availability"`
	MaxDailyJobs   int       `json:"max_daily_jobs"`
	AverageRating  float64   `json:"average_rating"`
	TotalReviews   int       `json:"total_reviews"`
	CreatedAt      time.Time `json:"created_at"`
}

// DashboardResponse is the provider home-screen summary: this month's
// earnings, the rating aggregate, and the week ahead.
type DashboardResponse struct {
	MonthlyEarnings  float64           `json:"monthly_earnings"`
	CompletedJobs    int64             `json:"completed_jobs"`
	AverageRating    float64           `json:"average_rating"`
	TotalReviews     int               `json:"total_reviews"`
	Availability     string            `json:"availability"`
	UpcomingBookings []BookingResponse `json:"upcoming_bookings"`
}

type EarningsResponse struct {
	Range         string  `json:"range"`
	TotalEarnings float64 `json:"total_earnings"`
	CompletedJobs int64   `json:"completed_jobs"`
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	ProviderID      string    `json:"provider_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func ProviderToResponse(provider *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:             provider.ID.String(),
		UserID:         provider.UserID.String(),
		Category:       provider.Category,
		City:           provider.City,
		Latitude:       provider.Latitude,
		Longitude:      provider.Longitude,
		ApprovalStatus: string(provider.ApprovalStatus),
		Availability:   string(provider.Availability),
		MaxDailyJobs:   provider.MaxDailyJobs,
		AverageRating:  provider.AverageRating,
		TotalReviews:   provider.TotalReviews,
		CreatedAt:      provider.CreatedAt,
	}
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID.String(),
		ProviderID:      service.ProviderID.String(),
		Title:           service.Title,
		Description:     service.Description,
		Category:        service.Category,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
		IsActive:        service.IsActive,
		CreatedAt:       service.CreatedAt,
	}
}
