package usecase

import (
	"fmt"
	"strings"
	"time"
)

// FormatElapsed renders the time between two dates as a human string listing
// the non-zero units, e.g. "1 day, 3 hours and 12 minutes". Either date being
// zero yields an empty string; an end before the start is an error.
func FormatElapsed(from, to time.Time) (string, error) {
	if from.IsZero() || to.IsZero() {
		return "", nil
	}
	if to.Before(from) {
		return "", fmt.Errorf("end date %s cannot be before start date %s", to, from)
	}

	delta := to.Sub(from)
	days := int(delta.Hours()) / 24
	hours := int(delta.Hours()) % 24
	minutes := int(delta.Minutes()) % 60
	seconds := int(delta.Seconds()) % 60

	units := []struct {
		value int
		name  string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	}

	var parts []string
	for _, u := range units {
		if u.value <= 0 {
			continue
		}
		part := fmt.Sprintf("%d %s", u.value, u.name)
		if u.value > 1 {
			part += "s"
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return "0 seconds", nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1], nil
}
