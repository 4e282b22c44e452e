// Package format renders activity figures the way the dashboard displays them.
package format

import (
	"fmt"
	"time"
)

// Distance in kilometres with one decimal, e.g. "12.3 km".
func Distance(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

// Elevation in whole meters, e.g. "450 m".
func Elevation(meters float64) string {
	return fmt.Sprintf("%.0f m", meters)
}

// Duration as hours and zero-padded minutes, e.g. "1h 05m".
// Leftover seconds are truncated; negative input renders as "0h 00m".
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
}

// Date as day, short month and year, e.g. "2 Jan 2024", in loc (nil means UTC).
func Date(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2 Jan 2006")
}
