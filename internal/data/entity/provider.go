package entity

import (
	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// AvailabilityStatus is the provider's self-reported readiness for new work.
type AvailabilityStatus string

const (
	AvailabilityOnline  AvailabilityStatus = "online"
	AvailabilityOffline AvailabilityStatus = "offline"
	AvailabilityBusy    AvailabilityStatus = "busy"
)

// Provider is the service-side profile owned 1:1 by a provider-role user.
// AverageRating and TotalReviews are a materialized aggregate recomputed from
// the review set on every review write, not enforced by the database.
type Provider struct {
	Base
	UserID         uuid.UUID          `db:"user_id"`
	Category       string             `db:"category"`
	City           string             `db:"city"`
	Latitude       *float64           `db:"latitude"`
	Longitude      *float64           `db:"longitude"`
	ApprovalStatus ApprovalStatus     `db:"approval_status"`
	Availability   AvailabilityStatus `db:"availability"`
	MaxDailyJobs   int                `db:"max_daily_jobs"`
	AverageRating  float64            `db:"average_rating"`
	TotalReviews   int                `db:"total_reviews"`
}
