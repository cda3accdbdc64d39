package domain

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is the reporting window of one journal.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "Daily"
	TimeframeWeekly  Timeframe = "Weekly"
	TimeframeMonthly Timeframe = "Monthly"
)

// ParseTimeframe accepts the timeframe in any casing.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(s) {
	case "daily":
		return TimeframeDaily, nil
	case "weekly":
		return TimeframeWeekly, nil
	case "monthly":
		return TimeframeMonthly, nil
	}
	return "", fmt.Errorf("unsupported timeframe %q", s)
}

// Window resolves the start date string into the [start, end) range the
// timeframe covers. Daily and Weekly take YYYY-MM-DD; Monthly also accepts
// YYYY-MM and spans the calendar month from the given day.
func (tf Timeframe) Window(dateStr string) (time.Time, time.Time, error) {
	switch tf {
	case TimeframeDaily:
		start, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
		}
		return start, start.AddDate(0, 0, 1), nil
	case TimeframeWeekly:
		start, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
		}
		return start, start.AddDate(0, 0, 7), nil
	case TimeframeMonthly:
		start, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			start, err = time.Parse("2006-01", dateStr)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
			}
		}
		end := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()).AddDate(0, 1, 0)
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
		return start, end, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unsupported timeframe %q", tf)
}

// ValidDate reports whether the start date is usable for the timeframe.
func (tf Timeframe) ValidDate(dateStr string) bool {
	_, _, err := tf.Window(dateStr)
	return err == nil
}
