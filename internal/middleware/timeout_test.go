package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		timeout      time.Duration
		wantDeadline bool
	}{
		{"deadline set", 50 * time.Millisecond, true},
		{"disabled", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestTimeout(tt.timeout))

			var deadline time.Time
			var hasDeadline bool
			r.GET("/", func(c *gin.Context) {
				deadline, hasDeadline = c.Request.Context().Deadline()
				c.Status(http.StatusNoContent)
			})

			start := time.Now()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != http.StatusNoContent {
				t.Fatalf("status = %d", w.Code)
			}
			if hasDeadline != tt.wantDeadline {
				t.Fatalf("deadline present = %v, want %v", hasDeadline, tt.wantDeadline)
			}
			if tt.wantDeadline && deadline.After(start.Add(tt.timeout+time.Second)) {
				t.Fatalf("deadline %v too far from start %v", deadline, start)
			}
		})
	}
}
