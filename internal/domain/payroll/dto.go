package payroll

import (
	"github.com/kintaihq/kintai-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	Month      string  `json:"month"` // YYYY-MM
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Month        string `json:"month"` // YYYY-MM

	WorkDays         int    `json:"work_days"`
	TotalWorkMinutes int    `json:"total_work_minutes"`
	TotalWorkLabel   string `json:"total_work_label"`
	OvertimeMinutes  int    `json:"overtime_minutes"`
	LateNightMinutes int    `json:"late_night_minutes"`
	LeaveDays        int    `json:"leave_days"`

	BaseSalary      int `json:"base_salary"`
	OvertimePay     int `json:"overtime_pay"`
	LateNightPay    int `json:"late_night_pay"`
	AllowanceAmount int `json:"allowance_amount"`
	DeductionAmount int `json:"deduction_amount"`
	GrossPay        int `json:"gross_pay"`
	NetPay          int `json:"net_pay"`

	CreatedAt string `json:"created_at"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Payslips   []PayslipResponse `json:"payslips"`
}

type PayrollFilter struct {
	Month      *string `json:"month,omitempty"` // YYYY-MM
	EmployeeID *string `json:"employee_id,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.Month != nil {
		if _, ok := validator.IsValidMonth(*f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
