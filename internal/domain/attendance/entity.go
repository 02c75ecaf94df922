package attendance

import (
	"time"
)

// Status is the derived lifecycle state of one work-day record. It is never
// stored independently; DeriveStatus is the single source of truth.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusCompleted  Status = "completed"
)

// BreakInterval is one break within a work-day. A nil End means the break
// is still open. Within a record at most one interval may be open and it
// must be the last element.
type BreakInterval struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// Attendance is one employee's record for one work-day. WorkDate is the
// civil date owning the shift under the 05:00 boundary rule, which is not
// necessarily the calendar date of ClockIn.
type Attendance struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Breaks     []BreakInterval

	// Stored statistics. When present the server values are authoritative;
	// the local calculator only fills the gap for still-open records.
	TotalWorkMinutes *int
	OvertimeMinutes  *int
	LateNightMinutes *int

	Memo            *string
	NeedsCorrection bool
	UpdatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// Status derives the record's current state from its clock fields.
func (a *Attendance) Status() Status {
	return DeriveStatus(a.ClockIn, a.ClockOut, a.Breaks)
}

// OpenBreak returns the trailing open break, or nil.
func (a *Attendance) OpenBreak() *BreakInterval {
	if len(a.Breaks) == 0 {
		return nil
	}
	last := &a.Breaks[len(a.Breaks)-1]
	if last.End == nil {
		return last
	}
	return nil
}
