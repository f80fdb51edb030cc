package entity

import (
	"github.com/google/uuid"
)

type Service struct {
	Base
	ProviderID      uuid.UUID `db:"provider_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Category        string    `db:"category"`
	Price           float64   `db:"price"`
	DurationMinutes int       `db:"duration_minutes"`
	IsActive        bool      `db:"is_active"`
}
