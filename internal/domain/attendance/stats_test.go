package attendance

import (
	"testing"
	"time"
)

func closed(start, end time.Time) BreakInterval {
	return BreakInterval{Start: start, End: &end}
}

func TestBreakMinutes(t *testing.T) {
	cases := []struct {
		name   string
		breaks []BreakInterval
		want   int
	}{
		{"no breaks", nil, 0},
		{"single lunch break", []BreakInterval{closed(at(15, 12, 0), at(15, 13, 0))}, 60},
		{"multiple intervals sum", []BreakInterval{
			closed(at(15, 12, 0), at(15, 12, 45)),
			closed(at(15, 15, 0), at(15, 15, 15)),
		}, 60},
		{"midnight-crossing break", []BreakInterval{closed(at(15, 23, 50), at(16, 0, 10))}, 20},
		{"open break contributes nothing", []BreakInterval{
			closed(at(15, 12, 0), at(15, 13, 0)),
			{Start: at(15, 16, 0)},
		}, 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := BreakMinutes(c.breaks); got != c.want {
				t.Errorf("BreakMinutes = %d, want %d", got, c.want)
			}
		})
	}
}

func TestComputeWorkStats(t *testing.T) {
	ptr := func(t time.Time) *time.Time { return &t }

	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut *time.Time
		breakMin int
		want     WorkStats
		wantOK   bool
	}{
		{
			name:    "open shift has no stats",
			clockIn: at(15, 9, 0),
		},
		{
			name:     "standard day with lunch",
			clockIn:  at(15, 9, 0),
			clockOut: ptr(at(15, 18, 0)),
			breakMin: 60,
			want:     WorkStats{TotalWorkMinutes: 480},
			wantOK:   true,
		},
		{
			name:     "long day accrues overtime",
			clockIn:  at(15, 9, 0),
			clockOut: ptr(at(15, 20, 0)),
			breakMin: 60,
			want:     WorkStats{TotalWorkMinutes: 600, OvertimeMinutes: 120},
			wantOK:   true,
		},
		{
			name:     "overnight shift crosses midnight",
			clockIn:  at(15, 22, 0),
			clockOut: ptr(at(16, 4, 0)),
			want:     WorkStats{TotalWorkMinutes: 360},
			wantOK:   true,
		},
		{
			name:     "same clock reading a day later",
			clockIn:  at(15, 9, 0),
			clockOut: ptr(at(16, 9, 0)),
			want:     WorkStats{TotalWorkMinutes: 1440, OvertimeMinutes: 960},
			wantOK:   true,
		},
		{
			name:     "breaks exceeding span is inconsistent",
			clockIn:  at(15, 9, 0),
			clockOut: ptr(at(15, 9, 30)),
			breakMin: 60,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ComputeWorkStats(c.clockIn, c.clockOut, c.breakMin)
			if ok != c.wantOK {
				t.Fatalf("ok = %v, want %v", ok, c.wantOK)
			}
			if ok && got != c.want {
				t.Errorf("stats = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestComputeWorkStats_Idempotent(t *testing.T) {
	clockOut := at(15, 20, 0)
	first, ok1 := ComputeWorkStats(at(15, 9, 0), &clockOut, 60)
	second, ok2 := ComputeWorkStats(at(15, 9, 0), &clockOut, 60)
	if !ok1 || !ok2 || first != second {
		t.Errorf("recomputation diverged: %+v vs %+v", first, second)
	}
}

func TestRecordStats_PrefersStoredValues(t *testing.T) {
	clockIn := at(15, 9, 0)
	clockOut := at(15, 18, 0)
	storedTotal, storedOvertime, storedLateNight := 475, 10, 30

	rec := Attendance{
		ClockIn:          &clockIn,
		ClockOut:         &clockOut,
		Breaks:           []BreakInterval{closed(at(15, 12, 0), at(15, 13, 0))},
		TotalWorkMinutes: &storedTotal,
		OvertimeMinutes:  &storedOvertime,
		LateNightMinutes: &storedLateNight,
	}

	total, overtime, lateNight := RecordStats(rec)
	if total == nil || *total != 475 {
		t.Errorf("stored total not preferred: got %v", total)
	}
	if overtime == nil || *overtime != 10 {
		t.Errorf("stored overtime not preferred: got %v", overtime)
	}
	if lateNight == nil || *lateNight != 30 {
		t.Errorf("stored late-night not preferred: got %v", lateNight)
	}
}

func TestRecordStats_FallsBackToLocalComputation(t *testing.T) {
	clockIn := at(15, 9, 0)
	clockOut := at(15, 18, 0)

	rec := Attendance{
		ClockIn:  &clockIn,
		ClockOut: &clockOut,
		Breaks:   []BreakInterval{closed(at(15, 12, 0), at(15, 13, 0))},
	}

	total, overtime, lateNight := RecordStats(rec)
	if total == nil || *total != 480 {
		t.Errorf("total = %v, want 480", total)
	}
	if overtime == nil || *overtime != 0 {
		t.Errorf("overtime = %v, want 0", overtime)
	}
	if lateNight == nil || *lateNight != 0 {
		t.Errorf("late-night fallback = %v, want 0", lateNight)
	}
}

func TestRecordStats_OpenShiftUnavailable(t *testing.T) {
	clockIn := at(15, 9, 0)
	rec := Attendance{ClockIn: &clockIn}

	total, overtime, lateNight := RecordStats(rec)
	if total != nil || overtime != nil || lateNight != nil {
		t.Errorf("open shift stats should be unavailable, got %v %v %v", total, overtime, lateNight)
	}
}
