package attendance

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	clockIn := at(15, 9, 0)
	clockOut := at(15, 18, 0)
	breakEnd := at(15, 13, 0)

	cases := []struct {
		name     string
		clockIn  *time.Time
		clockOut *time.Time
		breaks   []BreakInterval
		want     Status
	}{
		{"no clock-in", nil, nil, nil, StatusNotStarted},
		{"clocked in", &clockIn, nil, nil, StatusWorking},
		{"open break", &clockIn, nil, []BreakInterval{{Start: at(15, 12, 0)}}, StatusOnBreak},
		{"closed break back to working", &clockIn, nil, []BreakInterval{{Start: at(15, 12, 0), End: &breakEnd}}, StatusWorking},
		{"clocked out", &clockIn, &clockOut, nil, StatusCompleted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DeriveStatus(c.clockIn, c.clockOut, c.breaks); got != c.want {
				t.Errorf("DeriveStatus = %s, want %s", got, c.want)
			}
		})
	}
}

func TestGatesFor(t *testing.T) {
	cases := []struct {
		status Status
		want   Gates
	}{
		{StatusNotStarted, Gates{CanClockIn: true}},
		{StatusWorking, Gates{CanClockOut: true, CanStartBreak: true}},
		{StatusOnBreak, Gates{CanEndBreak: true}},
		{StatusCompleted, Gates{}},
	}
	for _, c := range cases {
		if got := GatesFor(c.status); got != c.want {
			t.Errorf("GatesFor(%s) = %+v, want %+v", c.status, got, c.want)
		}
	}
}

// Clock-out stays gated while a break is open; closing the break reopens it.
func TestClockOutGatedByOpenBreak(t *testing.T) {
	clockIn := at(15, 9, 0)
	breaks := []BreakInterval{{Start: at(15, 12, 0)}}

	gates := GatesFor(DeriveStatus(&clockIn, nil, breaks))
	if gates.CanClockOut {
		t.Error("clock-out must be illegal while a break is open")
	}

	end := at(15, 13, 0)
	breaks[0].End = &end
	gates = GatesFor(DeriveStatus(&clockIn, nil, breaks))
	if !gates.CanClockOut {
		t.Error("clock-out must become legal once the break is closed")
	}
}

func TestIsMissingClockOut(t *testing.T) {
	clockIn := at(14, 22, 0)
	clockOut := at(15, 4, 0)
	activeWorkDay := at(15, 0, 0)

	cases := []struct {
		name string
		rec  Attendance
		want bool
	}{
		{
			"past work-day with open shift is flagged",
			Attendance{WorkDate: at(14, 0, 0), ClockIn: &clockIn},
			true,
		},
		{
			"current work-day open shift is not flagged yet",
			Attendance{WorkDate: at(15, 0, 0), ClockIn: &clockIn},
			false,
		},
		{
			"closed shift is never flagged",
			Attendance{WorkDate: at(14, 0, 0), ClockIn: &clockIn, ClockOut: &clockOut},
			false,
		},
		{
			"never clocked in is not flagged",
			Attendance{WorkDate: at(14, 0, 0)},
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsMissingClockOut(c.rec, activeWorkDay); got != c.want {
				t.Errorf("IsMissingClockOut = %v, want %v", got, c.want)
			}
		})
	}
}

// WorkDate scans from the date column as UTC midnight while the active
// work-day is midnight in the service timezone. The same civil date must
// never count as past, whatever the zone offset.
func TestIsMissingClockOut_MixedLocations(t *testing.T) {
	honolulu, err := time.LoadLocation("Pacific/Honolulu")
	if err != nil {
		t.Fatal(err)
	}
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	clockIn := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		workDate      time.Time
		activeWorkDay time.Time
		want          bool
	}{
		{
			"same civil date, zone west of UTC",
			time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 2, 0, 0, 0, 0, honolulu),
			false,
		},
		{
			"same civil date, zone east of UTC",
			time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 2, 0, 0, 0, 0, tokyo),
			false,
		},
		{
			"previous civil date, zone west of UTC",
			time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 2, 0, 0, 0, 0, honolulu),
			true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := Attendance{WorkDate: c.workDate, ClockIn: &clockIn}
			if got := IsMissingClockOut(rec, c.activeWorkDay); got != c.want {
				t.Errorf("IsMissingClockOut = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValidateBreaks(t *testing.T) {
	end1 := at(15, 13, 0)

	ok := []BreakInterval{
		{Start: at(15, 12, 0), End: &end1},
		{Start: at(15, 16, 0)},
	}
	if err := ValidateBreaks(ok); err != nil {
		t.Errorf("valid sequence rejected: %v", err)
	}

	openNotLast := []BreakInterval{
		{Start: at(15, 12, 0)},
		{Start: at(15, 16, 0), End: &end1},
	}
	if err := ValidateBreaks(openNotLast); err == nil {
		t.Error("open break before a later break must be rejected")
	}

	outOfOrder := []BreakInterval{
		{Start: at(15, 16, 0), End: &end1},
		{Start: at(15, 12, 0)},
	}
	if err := ValidateBreaks(outOfOrder); err == nil {
		t.Error("out-of-order starts must be rejected")
	}
}
