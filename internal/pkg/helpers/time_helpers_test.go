package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "10s", want: 10 * time.Second},
		{in: "1h", want: time.Hour},
		{in: "", want: time.Minute},
		{in: "ten seconds", want: time.Minute},
		{in: "0s", want: time.Minute},
		{in: "-5s", want: time.Minute},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in, time.Minute); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
