package attendance

import "errors"

// Attendance domain errors
var (
	// Clock action errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in for this work-day")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")
	ErrBreakOpen         = errors.New("a break is still open")
	ErrNoOpenBreak       = errors.New("no break is currently open")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrBreakSequence      = errors.New("breaks must be chronological with at most one open interval at the end")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
