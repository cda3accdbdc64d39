package domain

import "time"

// Named trading sessions used to tag when a trade was opened.
const (
	SessionSydney  = "Sydney"
	SessionTokyo   = "Tokyo"
	SessionLondon  = "London"
	SessionNewYork = "New York"
)

type sessionWindow struct {
	name  string
	start int // minutes from midnight
	end   int
}

// TODO automatic check for season time changes
var sessionWindows = []sessionWindow{
	{SessionSydney, 22 * 60, 8 * 60},
	{SessionTokyo, 0, 8 * 60},
	{SessionLondon, 8 * 60, 17 * 60},
	{SessionNewYork, 14*60 + 30, 20 * 60},
}

// SessionsAt returns every session whose hours contain the given time.
// Overlapping windows all match; a time outside every window matches none.
func SessionsAt(t time.Time) []string {
	minute := t.Hour()*60 + t.Minute()

	var sessions []string
	for _, w := range sessionWindows {
		if w.start > w.end {
			// window spans midnight
			if minute >= w.start || minute < w.end {
				sessions = append(sessions, w.name)
			}
		} else if w.start < w.end {
			if minute >= w.start && minute < w.end {
				sessions = append(sessions, w.name)
			}
		}
	}
	return sessions
}
