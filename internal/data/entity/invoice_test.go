package entity

import (
	"math"
	"testing"
	"time"
)

func TestComputeGST(t *testing.T) {
	tests := []struct {
		name     string
		taxable  float64
		wantEach float64
	}{
		{"round subtotal", 1000, 90},
		{"zero subtotal", 0, 0},
		{"odd subtotal", 499, 44.91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cgst, sgst := ComputeGST(tt.taxable)
			if cgst != sgst {
				t.Errorf("cgst %.2f != sgst %.2f, want equal halves", cgst, sgst)
			}
			if math.Abs(cgst-tt.wantEach) > 1e-9 {
				t.Errorf("ComputeGST(%.2f) = %.2f per half, want %.2f", tt.taxable, cgst, tt.wantEach)
			}
			if math.Abs((cgst+sgst)-tt.taxable*GSTRate) > 1e-9 {
				t.Errorf("halves sum to %.4f, want %.4f", cgst+sgst, tt.taxable*GSTRate)
			}
		})
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		sequence int64
		want     string
	}{
		{"single digit month padded", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), 1, "INV2026030001"},
		{"double digit month", time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC), 42, "INV2026110042"},
		{"sequence past four digits keeps growing", time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), 12345, "INV20270112345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInvoiceNumber(tt.at, tt.sequence); got != tt.want {
				t.Errorf("FormatInvoiceNumber(%s, %d) = %s, want %s", tt.at.Format("2006-01"), tt.sequence, got, tt.want)
			}
		})
	}
}
