package attendance

import (
	"fmt"
	"time"
)

// BoundaryHour splits consecutive work-days. The bookkeeping day runs from
// 05:00 to 29:00 (05:00 the next calendar day), so a wall-clock hour before
// 05:00 still belongs to the previous day's shift.
const BoundaryHour = 5

// NextMorningMark prefixes clock labels for hours 0..4, which are the tail
// of a shift that began the previous calendar day.
const NextMorningMark = "翌朝"

// WorkDayFor returns the civil date (midnight-truncated, in t's location)
// that owns the moment t under the boundary rule.
func WorkDayFor(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Hour() < BoundaryHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// ClockLabel formats a timestamp as HH:MM for display. Hours before the
// boundary get the next-morning mark so "00:30 after a late shift" cannot
// be read as a fresh morning arrival. A nil timestamp renders as "-".
func ClockLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	if t.Hour() < BoundaryHour {
		return fmt.Sprintf("%s%02d:%02d", NextMorningMark, t.Hour(), t.Minute())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MinutesLabel formats a minute count as HH:MM. A nil count means the
// value is unavailable and renders as "-".
func MinutesLabel(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return fmt.Sprintf("%02d:%02d", *minutes/60, *minutes%60)
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
