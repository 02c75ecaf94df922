package response

import (
	"errors"
	"net/http"

	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintaihq/kintai-backend-go/internal/domain/auth"
	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
	"github.com/kintaihq/kintai-backend-go/internal/domain/leave"
	"github.com/kintaihq/kintai-backend-go/internal/domain/notification"
	"github.com/kintaihq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Illegal clock
// transitions are conflicts, not validation failures: the request was well
// formed, the state machine just forbids it right now.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state machine
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this work day")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, attendance.ErrBreakOpen):
		Conflict(w, "A break is still open")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No open break")
	case errors.Is(err, attendance.ErrBreakSequence):
		BadRequest(w, "Break intervals are out of order", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this record")

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee master
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists), errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")

	// Payroll
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrMonthNotClosed):
		Conflict(w, "Payroll month is not over yet")

	// Notifications
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
