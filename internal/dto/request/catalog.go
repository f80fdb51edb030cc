package request

type CreateProviderProfileRequest struct {
	Category     string   `json:"category" validate:"required,min=2,max=50"`
	City         string   `json:"city" validate:"required,min=2,max=100"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MaxDailyJobs int      `json:"max_daily_jobs" validate:"min=1,max=50"`
}

type UpdateProviderProfileRequest struct {
	Category     *string  `json:"category,omitempty" validate:"omitempty,min=2,max=50"`
	City         *string  `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MaxDailyJobs *int     `json:"max_daily_jobs,omitempty" validate:"omitempty,min=1,max=50"`
}

type CreateServiceRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=150"`
	Description     string  `json:"description" validate:"required,min=10,max=2000"`
	Category        string  `json:"category" validate:"required,min=2,max=50"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=15,max=720"`
}

type UpdateServiceRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,min=10,max=2000"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,min=2,max=50"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=720"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

type UpdateAvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline busy"`
}

type ListServicesRequest struct {
	PaginatedRequest
	Category string `json:"category" validate:"omitempty,min=2,max=50"`
}
