package payroll

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
	"github.com/kintaihq/kintai-backend-go/internal/domain/leave"
	"github.com/kintaihq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository

	loc *time.Location
	now func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	loc *time.Location,
	now func() time.Time,
) payroll.PayrollService {
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		PayrollRepository:      payrollRepo,
		EmployeeRepository:     employeeRepo,
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRepo,
		loc:                    loc,
		now:                    now,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ = claims["user_id"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

func toResponse(slip payroll.Payslip) payroll.PayslipResponse {
	total := slip.TotalWorkMinutes
	resp := payroll.PayslipResponse{
		ID:               slip.ID,
		EmployeeID:       slip.EmployeeID,
		Month:            slip.Month.Format("2006-01"),
		WorkDays:         slip.WorkDays,
		TotalWorkMinutes: slip.TotalWorkMinutes,
		TotalWorkLabel:   attendance.MinutesLabel(&total),
		OvertimeMinutes:  slip.OvertimeMinutes,
		LateNightMinutes: slip.LateNightMinutes,
		LeaveDays:        slip.LeaveDays,
		BaseSalary:       slip.BaseSalary,
		OvertimePay:      slip.OvertimePay,
		LateNightPay:     slip.LateNightPay,
		AllowanceAmount:  slip.AllowanceAmount,
		DeductionAmount:  slip.DeductionAmount,
		GrossPay:         slip.GrossPay,
		NetPay:           slip.NetPay,
		CreatedAt:        slip.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if slip.EmployeeName != nil {
		resp.EmployeeName = *slip.EmployeeName
	}
	if slip.EmployeeCode != nil {
		resp.EmployeeCode = *slip.EmployeeCode
	}
	return resp
}

// GeneratePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (*payroll.ListPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	monthStart, err := time.ParseInLocation("2006-01", req.Month, s.loc)
	if err != nil {
		return nil, payroll.ErrMonthNotClosed
	}
	monthEnd := monthStart.AddDate(0, 1, 0)
	if monthEnd.After(s.now().In(s.loc)) {
		return nil, payroll.ErrMonthNotClosed
	}

	var employees []employee.Employee
	if req.EmployeeID != nil {
		emp, err := s.EmployeeRepository.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			return nil, err
		}
		employees = []employee.Employee{emp}
	} else {
		employees, err = s.EmployeeRepository.ListActive(ctx)
		if err != nil {
			return nil, err
		}
	}

	resp := &payroll.ListPayrollResponse{Payslips: []payroll.PayslipResponse{}}
	for _, emp := range employees {
		slip, err := s.buildPayslip(ctx, emp, monthStart, userID)
		if err != nil {
			return nil, err
		}

		created, err := s.PayrollRepository.Create(ctx, slip)
		if err != nil {
			return nil, err
		}
		created.EmployeeName = &emp.FullName
		created.EmployeeCode = &emp.Code
		resp.Payslips = append(resp.Payslips, toResponse(created))
	}

	resp.TotalCount = int64(len(resp.Payslips))
	resp.Page = 1
	resp.Limit = len(resp.Payslips)
	resp.TotalPages = 1
	resp.Showing = fmt.Sprintf("1-%d of %d", len(resp.Payslips), len(resp.Payslips))

	return resp, nil
}

// buildPayslip aggregates one employee's month and prices it.
func (s *PayrollServiceImpl) buildPayslip(ctx context.Context, emp employee.Employee, monthStart time.Time, generatedBy string) (payroll.Payslip, error) {
	records, err := s.AttendanceRepository.ListForMonth(ctx, emp.ID, monthStart)
	if err != nil {
		return payroll.Payslip{}, err
	}

	slip := payroll.Payslip{
		EmployeeID:      emp.ID,
		Month:           monthStart,
		BaseSalary:      emp.BaseSalary,
		AllowanceAmount: emp.AllowanceAmount,
		DeductionAmount: emp.DeductionAmount,
		GeneratedBy:     generatedBy,
	}

	for _, r := range records {
		if r.ClockIn == nil {
			continue
		}
		total, overtime, lateNight := attendance.RecordStats(r)
		if total == nil {
			// Unclosed or inconsistent day; it contributes nothing until
			// corrected.
			continue
		}
		slip.WorkDays++
		slip.TotalWorkMinutes += *total
		if overtime != nil {
			slip.OvertimeMinutes += *overtime
		}
		if lateNight != nil {
			slip.LateNightMinutes += *lateNight
		}
	}

	slip.LeaveDays, err = s.LeaveRequestRepository.ApprovedDaysInMonth(ctx, emp.ID, monthStart)
	if err != nil {
		return payroll.Payslip{}, err
	}

	result := Calculate(CalcInputs{
		BaseSalary:       slip.BaseSalary,
		AllowanceAmount:  slip.AllowanceAmount,
		DeductionAmount:  slip.DeductionAmount,
		TotalWorkMinutes: slip.TotalWorkMinutes,
		OvertimeMinutes:  slip.OvertimeMinutes,
		LateNightMinutes: slip.LateNightMinutes,
	})
	slip.OvertimePay = result.OvertimePay
	slip.LateNightPay = result.LateNightPay
	slip.GrossPay = result.GrossPay
	slip.NetPay = result.NetPay

	return slip, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (*payroll.PayslipResponse, error) {
	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	slip, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !role.CanManage() {
		// Employees only see their own slips.
		_, claims, _ := jwtauth.FromContext(ctx)
		employeeID, _ := claims["employee_id"].(string)
		if slip.EmployeeID != employeeID {
			return nil, payroll.ErrPayslipNotFound
		}
	}

	resp := toResponse(slip)
	return &resp, nil
}

// ListPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayroll(ctx context.Context, filter payroll.PayrollFilter) (*payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		_, claims, _ := jwtauth.FromContext(ctx)
		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			return nil, user.ErrAdminPrivilegeRequired
		}
		filter.EmployeeID = &employeeID
	}

	slips, total, err := s.PayrollRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Payslips:   []payroll.PayslipResponse{},
	}
	for _, slip := range slips {
		resp.Payslips = append(resp.Payslips, toResponse(slip))
	}

	from := (filter.Page-1)*filter.Limit + 1
	to := (filter.Page-1)*filter.Limit + len(slips)
	if len(slips) == 0 {
		from = 0
	}
	resp.Showing = fmt.Sprintf("%d-%d of %d", from, to, total)

	return resp, nil
}
