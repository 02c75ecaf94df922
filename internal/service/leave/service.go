package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
	"github.com/kintaihq/kintai-backend-go/internal/domain/leave"
	"github.com/kintaihq/kintai-backend-go/internal/domain/notification"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	notificationService notification.NotificationService
	loc                 *time.Location
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	notificationService notification.NotificationService,
	loc *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		notificationService:    notificationService,
		loc:                    loc,
	}
}

func claimsFromContext(ctx context.Context) (userID, employeeID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ = claims["user_id"].(string)
	if userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)

	roleStr, _ := claims["role"].(string)
	return userID, employeeID, user.Role(roleStr), nil
}

func toResponse(req leave.LeaveRequest) *leave.LeaveRequestResponse {
	resp := &leave.LeaveRequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		LeaveType:       req.LeaveType,
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		Days:            req.Days(),
		Reason:          req.Reason,
		Status:          string(req.Status),
		ReviewedBy:      req.ReviewedBy,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if req.EmployeeName != nil {
		resp.EmployeeName = *req.EmployeeName
	}
	if req.ReviewedAt != nil {
		reviewed := req.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &reviewed
	}
	return resp
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequest) (*leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, leave.ErrLeaveRequestNotFound
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.loc)

	overlaps, err := s.LeaveRequestRepository.HasOverlap(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, leave.ErrOverlappingRequest
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	return toResponse(created), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (*leave.LeaveRequestResponse, error) {
	_, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !role.CanManage() && req.EmployeeID != employeeID {
		return nil, leave.ErrLeaveRequestNotFound
	}

	return toResponse(req), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveFilter) (*leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Non-managers only ever see their own requests.
	if !role.CanManage() {
		filter.EmployeeID = &employeeID
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   []leave.LeaveRequestResponse{},
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, *toResponse(r))
	}

	return resp, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, id string) (*leave.LeaveRequestResponse, error) {
	return s.review(ctx, id, leave.StatusApproved, nil)
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, id string, req leave.RejectLeaveRequest) (*leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.review(ctx, id, leave.StatusRejected, &req.Reason)
}

func (s *LeaveServiceImpl) review(ctx context.Context, id string, status leave.RequestStatus, rejectionReason *string) (*leave.LeaveRequestResponse, error) {
	userID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	req, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != leave.StatusPending {
		return nil, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := time.Now().In(s.loc)
	req.Status = status
	req.ReviewedBy = &userID
	req.ReviewedAt = &now
	req.RejectionReason = rejectionReason

	if err := s.LeaveRequestRepository.Update(ctx, req); err != nil {
		return nil, err
	}

	if emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err == nil && emp.UserID != nil {
		verdict := "approved"
		if status == leave.StatusRejected {
			verdict = "rejected"
		}
		_ = s.notificationService.Notify(ctx, *emp.UserID, notification.TypeLeaveReviewed,
			fmt.Sprintf("Leave request %s", verdict),
			fmt.Sprintf("Your %s leave from %s to %s was %s.", req.LeaveType,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), verdict),
		)
	}

	return toResponse(req), nil
}

// CancelLeaveRequest implements leave.LeaveService. Only the owner may
// cancel, and only while the request is still pending.
func (s *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, id string) error {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	req, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.EmployeeID != employeeID {
		return leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	req.Status = leave.StatusRejected
	reason := "cancelled by employee"
	req.RejectionReason = &reason

	return s.LeaveRequestRepository.Update(ctx, req)
}
