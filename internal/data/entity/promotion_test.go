package entity

import (
	"testing"
	"time"
)

func TestPromotionIsValidAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	base := Promotion{
		Status:     PromoActive,
		StartDate:  now.AddDate(0, 0, -7),
		EndDate:    now.AddDate(0, 0, 7),
		UsageLimit: 100,
		UsageCount: 0,
	}

	tests := []struct {
		name   string
		mutate func(p *Promotion)
		want   bool
	}{
		{"active within window", func(p *Promotion) {}, true},
		{"paused", func(p *Promotion) { p.Status = PromoPaused }, false},
		{"expired status", func(p *Promotion) { p.Status = PromoExpired }, false},
		{"not started yet", func(p *Promotion) { p.StartDate = now.AddDate(0, 0, 1) }, false},
		{"starts exactly now", func(p *Promotion) { p.StartDate = now }, true},
		{"ended", func(p *Promotion) { p.EndDate = now.AddDate(0, 0, -1) }, false},
		{"ends exactly now", func(p *Promotion) { p.EndDate = now }, true},
		{"usage exhausted", func(p *Promotion) { p.UsageCount = 100 }, false},
		{"one use left", func(p *Promotion) { p.UsageCount = 99 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if got := p.IsValidAt(now); got != tt.want {
				t.Errorf("IsValidAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
