package usecase_test

import (
	"testing"
	"time"

	"github.com/vitos/trade_journal/internal/usecase"
)

func TestFormatElapsed(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{"seconds only", 45 * time.Second, "45 seconds"},
		{"single unit", 3 * time.Hour, "3 hours"},
		{"singular unit", time.Minute, "1 minute"},
		{"two units", 2*time.Hour + 30*time.Minute, "2 hours and 30 minutes"},
		{"all units", 26*time.Hour + 3*time.Minute + 5*time.Second, "1 day, 2 hours, 3 minutes and 5 seconds"},
		{"zero delta", 0, "0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.FormatElapsed(base, base.Add(tt.delta))
			if err != nil {
				t.Fatalf("FormatElapsed() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatElapsed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatElapsedZeroDates(t *testing.T) {
	got, err := usecase.FormatElapsed(time.Time{}, time.Now())
	if err != nil || got != "" {
		t.Errorf("FormatElapsed(zero, now) = (%q, %v), want empty and no error", got, err)
	}
}

func TestFormatElapsedEndBeforeStart(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if _, err := usecase.FormatElapsed(base, base.Add(-time.Second)); err == nil {
		t.Errorf("FormatElapsed() error = nil for an end before the start, want error")
	}
}
