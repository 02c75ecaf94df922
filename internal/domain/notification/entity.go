package notification

import "time"

type Type string

const (
	TypeMissingClockOut Type = "missing_clock_out"
	TypeLeaveReviewed   Type = "leave_reviewed"
	TypeLeaveRequested  Type = "leave_requested"
)

type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
