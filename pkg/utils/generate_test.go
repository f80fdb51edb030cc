package utils

import (
	"strings"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatTimeOfDay(tt.minute); got != tt.want {
			t.Errorf("FormatTimeOfDay(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for _, value := range []string{"00:00", "06:15", "12:00", "18:45", "23:59"} {
		minute, err := ParseTimeOfDay(value)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", value, err)
		}
		if got := FormatTimeOfDay(minute); got != value {
			t.Errorf("round trip %q -> %d -> %q", value, minute, got)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		value string
		def   int
		want  int
	}{
		{"5", 1, 5},
		{"", 1, 1},
		{"abc", 1, 1},
		{"0", 10, 10},
		{"-3", 10, 10},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.value, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestGenerateBookingRef(t *testing.T) {
	ref := GenerateBookingRef()
	if !strings.HasPrefix(ref, "TASK-") {
		t.Errorf("ref %q missing prefix", ref)
	}
	if parts := strings.Split(ref, "-"); len(parts) != 4 {
		t.Errorf("ref %q has %d segments, want 4", ref, len(parts))
	}
}
