// Package timeago renders how long ago something happened.
package timeago

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// Format renders the delta between then and now, e.g. "1 min ago" or
// "2 days ago". Timestamps in the future render as "Just now".
func Format(then, now time.Time) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return unit(int(d/time.Minute), "min", "mins")
	case d < day:
		return unit(int(d/time.Hour), "hour", "hours")
	case d < month:
		return unit(int(d/day), "day", "days")
	case d < year:
		return unit(int(d/month), "month", "months")
	default:
		return unit(int(d/year), "year", "years")
	}
}

// FormatMillis is Format for epoch-millisecond timestamps.
func FormatMillis(thenMillis int64, now time.Time) string {
	return Format(time.UnixMilli(thenMillis), now)
}

func unit(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", singular)
	}
	return fmt.Sprintf("%d %s ago", n, plural)
}
