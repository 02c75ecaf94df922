package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Breaks
// are loaded and stored with their record; insertion order is chronological
// order.
type AttendanceRepository interface {
	// Create inserts a new work-day record (first clock-in of the day).
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves one record with its breaks.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndWorkDay retrieves the employee's record for one
	// work-day, or ErrAttendanceNotFound.
	GetByEmployeeAndWorkDay(ctx context.Context, employeeID string, workDate time.Time) (Attendance, error)

	// Update persists clock fields, stored statistics, memo and the
	// correction flag.
	Update(ctx context.Context, attendance Attendance) error

	// ReplaceBreaks overwrites the record's break intervals.
	ReplaceBreaks(ctx context.Context, attendanceID string, breaks []BreakInterval) error

	// AddBreak appends a break interval to the record.
	AddBreak(ctx context.Context, attendanceID string, b BreakInterval) (BreakInterval, error)

	// CloseBreak sets the end timestamp of an open break.
	CloseBreak(ctx context.Context, breakID string, end time.Time) error

	// List retrieves records with filters and pagination (admin view).
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployee retrieves one employee's records.
	ListByEmployee(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListForMonth retrieves one employee's records for a calendar month.
	ListForMonth(ctx context.Context, employeeID string, month time.Time) ([]Attendance, error)

	// ListOpenBefore retrieves records with a clock-in, no clock-out, and
	// a work-day strictly before the given one. Used by the sweep.
	ListOpenBefore(ctx context.Context, workDay time.Time) ([]Attendance, error)
}
