package response

import (
	"time"

	"tasktakr/internal/data/entity"
)

type PromotionResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	Value         float64   `json:"value"`
	MaxDiscount   *float64  `json:"max_discount,omitempty"`
	MinOrderValue float64   `json:"min_order_value"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	UsageLimit    int       `json:"usage_limit"`
	UsageCount    int       `json:"usage_count"`
	UserType      string    `json:"user_type"`
	Status        string    `json:"status"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PromotionQuoteResponse is the answer to a validate call: the discount the
// code would yield against the given order value, without consuming usage.
// A code that does not exist or is not applicable fails the call instead.
type PromotionQuoteResponse struct {
	Code          string  `json:"code"`
	Discount      float64 `json:"discount"`
	PayableAmount float64 `json:"payable_amount"`
}

type AppliedPromotionResponse struct {
	Code          string  `json:"code"`
	Discount      float64 `json:"discount"`
	TotalPrice    float64 `json:"total_price"`
	PayableAmount float64 `json:"payable_amount"`
}

func PromotionToResponse(promotion *entity.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:            promotion.ID.String(),
		Name:          promotion.Name,
		Code:          promotion.Code,
		Type:          string(promotion.Type),
		Value:         promotion.Value,
		MaxDiscount:   promotion.MaxDiscount,
		MinOrderValue: promotion.MinOrderValue,
		StartDate:     promotion.StartDate.Format("2006-01-02"),
		EndDate:       promotion.EndDate.Format("2006-01-02"),
		UsageLimit:    promotion.UsageLimit,
		UsageCount:    promotion.UsageCount,
		UserType:      string(promotion.UserType),
		Status:        string(promotion.Status),
		Description:   promotion.Description,
		CreatedAt:     promotion.CreatedAt,
	}
}
