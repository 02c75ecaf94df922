package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock operations. The
// employee identity comes from the caller's JWT claims.
type AttendanceService interface {
	// ClockIn opens the active work-day's record; the server stamps the time.
	ClockIn(ctx context.Context) (AttendanceResponse, error)

	// ClockOut closes the open record and persists its statistics.
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// StartBreak opens a break on the working record.
	StartBreak(ctx context.Context) (AttendanceResponse, error)

	// EndBreak closes the trailing open break.
	EndBreak(ctx context.Context) (AttendanceResponse, error)

	// GetStatus reports the state machine view for the live clock screen,
	// including any missing-clock-out advisories.
	GetStatus(ctx context.Context) (StatusResponse, error)

	// GetMyAttendance retrieves the caller's records.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records across employees (admin/manager).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record.
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance applies a manual correction: full overwrite of the
	// clock and break fields, with stats recomputed and stored.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// GetSummary aggregates the caller's month (YYYY-MM).
	GetSummary(ctx context.Context, month string) (SummaryResponse, error)

	// SweepMissingClockOuts flags unclosed shifts from past work-days for
	// manual correction and notifies their owners. Run by cron.
	SweepMissingClockOuts(ctx context.Context) error
}
