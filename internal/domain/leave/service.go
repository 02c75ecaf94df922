package leave

import "context"

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequest) (*LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (*LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveFilter) (*ListLeaveResponse, error)
	ApproveLeaveRequest(ctx context.Context, id string) (*LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, id string, req RejectLeaveRequest) (*LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, id string) error
}
