package attendance

import "time"

// DeriveStatus is the single authoritative derivation of a record's state
// from its clock fields. Every call site that needs a status goes through
// here; nothing re-derives it ad hoc.
func DeriveStatus(clockIn, clockOut *time.Time, breaks []BreakInterval) Status {
	if clockIn == nil {
		return StatusNotStarted
	}
	if clockOut != nil {
		return StatusCompleted
	}
	if n := len(breaks); n > 0 && breaks[n-1].End == nil {
		return StatusOnBreak
	}
	return StatusWorking
}

// Gates reports which clock actions are currently legal. The handler
// exposes them so clients disable buttons instead of issuing requests
// that would be rejected.
type Gates struct {
	CanClockIn    bool `json:"can_clock_in"`
	CanClockOut   bool `json:"can_clock_out"`
	CanStartBreak bool `json:"can_start_break"`
	CanEndBreak   bool `json:"can_end_break"`
}

// GatesFor derives the action gates from a status.
func GatesFor(status Status) Gates {
	switch status {
	case StatusNotStarted:
		return Gates{CanClockIn: true}
	case StatusWorking:
		return Gates{CanClockOut: true, CanStartBreak: true}
	case StatusOnBreak:
		return Gates{CanEndBreak: true}
	default:
		return Gates{}
	}
}

// IsMissingClockOut reports whether the record is an unclosed shift from a
// past work-day: clocked in, never clocked out, and its work-day is
// strictly before the active one. The current work-day's open shift is not
// missing anything yet.
func IsMissingClockOut(a Attendance, activeWorkDay time.Time) bool {
	if a.ClockIn == nil || a.ClockOut != nil {
		return false
	}
	// Civil-date comparison. WorkDate may carry a different location than
	// activeWorkDay (UTC from the date column vs the service timezone), so
	// comparing the midnight instants would shift the answer by a day for
	// zones west of UTC.
	return a.WorkDate.Format("2006-01-02") < activeWorkDay.Format("2006-01-02")
}

// ValidateBreaks enforces the break-sequence invariant on writes and
// manual corrections: starts are chronological within the record and only
// the last interval may be open.
func ValidateBreaks(breaks []BreakInterval) error {
	for i, b := range breaks {
		if b.End == nil && i != len(breaks)-1 {
			return ErrBreakSequence
		}
		if i > 0 && b.Start.Before(breaks[i-1].Start) {
			return ErrBreakSequence
		}
	}
	return nil
}
