package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// HasOverlap reports whether the employee already has a pending or
	// approved request intersecting [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// ApprovedDaysInMonth counts the employee's approved leave days that
	// fall inside the given calendar month.
	ApprovedDaysInMonth(ctx context.Context, employeeID string, month time.Time) (int, error)
}
