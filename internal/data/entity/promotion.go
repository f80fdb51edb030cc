package entity

import (
	"time"
)

type PromotionType string

const (
	PromoFlat       PromotionType = "FLAT"
	PromoPercentage PromotionType = "PERCENTAGE"
	PromoFirstTime  PromotionType = "FIRST_TIME"
)

type PromotionStatus string

const (
	PromoActive  PromotionStatus = "ACTIVE"
	PromoPaused  PromotionStatus = "PAUSED"
	PromoExpired PromotionStatus = "EXPIRED"
)

type PromoUserType string

const (
	PromoUserAll      PromoUserType = "ALL"
	PromoUserNew      PromoUserType = "NEW"
	PromoUserExisting PromoUserType = "EXISTING"
)

type Promotion struct {
	Base
	Name          string          `db:"name"`
	Code          string          `db:"code"` // stored uppercased, unique
	Type          PromotionType   `db:"type"`
	Value         float64         `db:"value"`
	MaxDiscount   *float64        `db:"max_discount"` // required when Type is PERCENTAGE
	MinOrderValue float64         `db:"min_order_value"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	UsageLimit    int             `db:"usage_limit"`
	UsageCount    int             `db:"usage_count"` // monotonically increasing
	UserType      PromoUserType   `db:"user_type"`
	Categories    []string        `db:"categories"` // forward-compatible targeting, not evaluated
	Cities        []string        `db:"cities"`     // forward-compatible targeting, not evaluated
	Status        PromotionStatus `db:"status"`
	Description   *string         `db:"description"`
}

// IsValidAt reports whether the promotion can be redeemed at the given time.
func (p *Promotion) IsValidAt(now time.Time) bool {
	return p.Status == PromoActive &&
		!now.Before(p.StartDate) &&
		!now.After(p.EndDate) &&
		p.UsageCount < p.UsageLimit
}
