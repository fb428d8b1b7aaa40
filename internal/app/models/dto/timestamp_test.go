package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole second", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), `"2025-01-02T03:04:05.000Z"`},
		{"milliseconds", time.Date(2025, 1, 2, 3, 4, 5, 120_000_000, time.UTC), `"2025-01-02T03:04:05.120Z"`},
		{"sub-millisecond truncated", time.Date(2025, 1, 2, 3, 4, 5, 999_999_999, time.UTC), `"2025-01-02T03:04:05.999Z"`},
		{"converted to utc", time.Date(2025, 1, 2, 5, 4, 5, 0, time.FixedZone("EET", 2*3600)), `"2025-01-02T03:04:05.000Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(NewTimestamp(tt.in))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Fatalf("got %s, want %s", b, tt.want)
			}
		})
	}
}

func TestTimestampUnmarshalJSON(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2025-01-02T03:04:05.120Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ts.Equal(time.Date(2025, 1, 2, 3, 4, 5, 120_000_000, time.UTC)) {
		t.Fatalf("got %v", ts.Time)
	}
	if err := json.Unmarshal([]byte(`12`), &ts); err == nil {
		t.Fatal("expected error for a non-string timestamp")
	}
}
