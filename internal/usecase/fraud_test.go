package usecase

import (
	"math"
	"strings"
	"testing"
	"time"

	"tasktakr/pkg/utils"
)

func testFraudConfig() utils.FraudConfig {
	return utils.FraudConfig{
		CancellationThreshold:     3,
		CancellationWindow:        24 * time.Hour,
		BookingFrequencyThreshold: 5,
		BookingFrequencyWindow:    time.Hour,
		LocationChangeKm:          50,
		PaymentChangeThreshold:    3,
		PaymentChangeWindow:       24 * time.Hour,
	}
}

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
	}{
		{"same point", 12.97, 77.59, 12.97, 77.59, 0},
		{"one degree of longitude at equator", 0, 0, 0, 1, 111.19},
		{"bengaluru to mysuru", 12.9716, 77.5946, 12.2958, 76.6394, 128.8},
		{"mumbai to delhi", 19.0760, 72.8777, 28.7041, 77.1025, 1153},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantKm == 0 {
				if got != 0 {
					t.Errorf("Haversine() = %f, want 0", got)
				}
				return
			}
			// within 1% of the reference distance
			if math.Abs(got-tt.wantKm)/tt.wantKm > 0.01 {
				t.Errorf("Haversine() = %f, want about %f", got, tt.wantKm)
			}
		})
	}
}

func TestEvaluateBooking(t *testing.T) {
	cfg := testFraudConfig()

	near := &Coordinate{Latitude: 12.9716, Longitude: 77.5946}
	far := &Coordinate{Latitude: 19.0760, Longitude: 72.8777}

	tests := []struct {
		name        string
		activity    BookingActivity
		suspicious  bool
		wantReasons []string
	}{
		{
			name:       "clean",
			activity:   BookingActivity{CancelledInWindow: 2, CreatedInWindow: 4},
			suspicious: false,
		},
		{
			name:        "cancellations at threshold",
			activity:    BookingActivity{CancelledInWindow: 3},
			suspicious:  true,
			wantReasons: []string{RuleExcessiveCancellations},
		},
		{
			name:        "booking frequency at threshold",
			activity:    BookingActivity{CreatedInWindow: 5},
			suspicious:  true,
			wantReasons: []string{RuleHighBookingFrequency},
		},
		{
			name:        "location jumped past limit",
			activity:    BookingActivity{LastLocation: near, NewLocation: far},
			suspicious:  true,
			wantReasons: []string{RuleSuspiciousLocation},
		},
		{
			name:       "location unchanged",
			activity:   BookingActivity{LastLocation: near, NewLocation: near},
			suspicious: false,
		},
		{
			name:       "no previous location",
			activity:   BookingActivity{NewLocation: far},
			suspicious: false,
		},
		{
			name: "multiple rules fire together",
			activity: BookingActivity{
				CancelledInWindow: 4,
				CreatedInWindow:   6,
				LastLocation:      near,
				NewLocation:       far,
			},
			suspicious:  true,
			wantReasons: []string{RuleExcessiveCancellations, RuleHighBookingFrequency, RuleSuspiciousLocation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := EvaluateBooking(tt.activity, cfg)
			if verdict.Suspicious != tt.suspicious {
				t.Fatalf("Suspicious = %v, want %v (reasons: %v)", verdict.Suspicious, tt.suspicious, verdict.Reasons)
			}
			if len(verdict.Reasons) != len(tt.wantReasons) {
				t.Fatalf("got %d reasons %v, want %d", len(verdict.Reasons), verdict.Reasons, len(tt.wantReasons))
			}
			for i, rule := range tt.wantReasons {
				if !strings.HasPrefix(verdict.Reasons[i], rule) {
					t.Errorf("reason[%d] = %q, want prefix %q", i, verdict.Reasons[i], rule)
				}
			}
		})
	}
}

func TestEvaluatePayment(t *testing.T) {
	cfg := testFraudConfig()

	tests := []struct {
		name       string
		changes    int
		suspicious bool
	}{
		{"no changes", 0, false},
		{"below threshold", 2, false},
		{"at threshold", 3, true},
		{"above threshold", 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := EvaluatePayment(PaymentActivity{MethodChangesInWindow: tt.changes}, cfg)
			if verdict.Suspicious != tt.suspicious {
				t.Errorf("Suspicious = %v, want %v", verdict.Suspicious, tt.suspicious)
			}
			if tt.suspicious && !strings.HasPrefix(verdict.Reasons[0], RuleFrequentPaymentChanges) {
				t.Errorf("reason = %q, want prefix %q", verdict.Reasons[0], RuleFrequentPaymentChanges)
			}
		})
	}
}
