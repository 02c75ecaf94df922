package attendance

import "time"

const (
	// StandardWorkMinutes is the daily threshold beyond which worked time
	// counts as overtime.
	StandardWorkMinutes = 480

	minutesPerDay = 1440
)

// WorkStats are the derived per-record statistics.
type WorkStats struct {
	TotalWorkMinutes int
	OvertimeMinutes  int
	LateNightMinutes int
}

// BreakMinutes sums the durations of all closed break intervals. An
// interval whose end clock reads earlier than its start crossed midnight
// and gets a day added before subtracting; a malformed interval clamps to
// zero instead of going negative. Open intervals contribute nothing.
func BreakMinutes(breaks []BreakInterval) int {
	total := 0
	for _, b := range breaks {
		if b.End == nil {
			continue
		}
		d := minutesOfDay(*b.End) - minutesOfDay(b.Start)
		if d < 0 {
			d += minutesPerDay
		}
		if d > 0 {
			total += d
		}
	}
	return total
}

// ComputeWorkStats derives total, overtime and late-night minutes from the
// clock pair and the aggregated break minutes. The second return value is
// false when the statistics are unavailable: the shift is still open
// (clockOut nil) or the inputs are inconsistent (negative total). Callers
// must render unavailable stats as "-" rather than a number.
//
// Late-night minutes are reported as zero here; the upstream source of
// record supplies the real value and this calculator is only the fallback
// for still-open days.
func ComputeWorkStats(clockIn time.Time, clockOut *time.Time, breakMinutes int) (WorkStats, bool) {
	if clockOut == nil {
		return WorkStats{}, false
	}

	inMin := minutesOfDay(clockIn)
	outMin := minutesOfDay(*clockOut)

	// Crossed at least one midnight: later calendar day, or the same day
	// with an earlier clock reading.
	inDay := calendarDate(clockIn)
	outDay := calendarDate(*clockOut)
	if outDay.After(inDay) || (outDay.Equal(inDay) && outMin < inMin) {
		outMin += minutesPerDay
	}

	total := outMin - inMin - breakMinutes
	if total < 0 {
		return WorkStats{}, false
	}

	overtime := total - StandardWorkMinutes
	if overtime < 0 {
		overtime = 0
	}

	return WorkStats{
		TotalWorkMinutes: total,
		OvertimeMinutes:  overtime,
		LateNightMinutes: 0,
	}, true
}

// RecordStats resolves the statistics for a record, preferring the stored
// server values over local recomputation so list and detail views cannot
// diverge. Returns nil values when the stats are unavailable.
func RecordStats(a Attendance) (totalWork, overtime, lateNight *int) {
	if a.TotalWorkMinutes != nil && a.OvertimeMinutes != nil {
		return a.TotalWorkMinutes, a.OvertimeMinutes, a.LateNightMinutes
	}

	if a.ClockIn == nil {
		return nil, nil, nil
	}

	stats, ok := ComputeWorkStats(*a.ClockIn, a.ClockOut, BreakMinutes(a.Breaks))
	if !ok {
		return nil, nil, nil
	}
	return &stats.TotalWorkMinutes, &stats.OvertimeMinutes, &stats.LateNightMinutes
}
