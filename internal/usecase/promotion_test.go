package usecase

import (
	"testing"

	"tasktakr/internal/data/entity"
)

func TestComputeDiscount(t *testing.T) {
	maxDiscount := func(v float64) *float64 { return &v }

	tests := []struct {
		name       string
		promotion  entity.Promotion
		orderValue float64
		want       float64
	}{
		{
			name:       "flat",
			promotion:  entity.Promotion{Type: entity.PromoFlat, Value: 150},
			orderValue: 1000,
			want:       150,
		},
		{
			name:       "flat clamped to order value",
			promotion:  entity.Promotion{Type: entity.PromoFlat, Value: 500},
			orderValue: 300,
			want:       300,
		},
		{
			name:       "percentage",
			promotion:  entity.Promotion{Type: entity.PromoPercentage, Value: 10},
			orderValue: 1000,
			want:       100,
		},
		{
			name:       "percentage capped at max discount",
			promotion:  entity.Promotion{Type: entity.PromoPercentage, Value: 20, MaxDiscount: maxDiscount(100)},
			orderValue: 1000,
			want:       100,
		},
		{
			name:       "percentage under max discount",
			promotion:  entity.Promotion{Type: entity.PromoPercentage, Value: 5, MaxDiscount: maxDiscount(100)},
			orderValue: 1000,
			want:       50,
		},
		{
			name:       "full percentage clamped to order value",
			promotion:  entity.Promotion{Type: entity.PromoPercentage, Value: 100},
			orderValue: 800,
			want:       800,
		},
		{
			name:       "first time behaves as flat",
			promotion:  entity.Promotion{Type: entity.PromoFirstTime, Value: 200},
			orderValue: 1000,
			want:       200,
		},
		{
			name:       "unknown type gives nothing",
			promotion:  entity.Promotion{Type: entity.PromotionType("BOGOF"), Value: 200},
			orderValue: 1000,
			want:       0,
		},
		{
			name:       "zero order value",
			promotion:  entity.Promotion{Type: entity.PromoFlat, Value: 100},
			orderValue: 0,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeDiscount(&tt.promotion, tt.orderValue); got != tt.want {
				t.Errorf("ComputeDiscount() = %f, want %f", got, tt.want)
			}
		})
	}
}
