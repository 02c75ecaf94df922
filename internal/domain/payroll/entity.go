package payroll

import "time"

type Payslip struct {
	ID         string
	EmployeeID string

	// Month is the first day of the payroll month, midnight local time.
	Month time.Time

	WorkDays         int
	TotalWorkMinutes int
	OvertimeMinutes  int
	LateNightMinutes int
	LeaveDays        int

	BaseSalary      int
	OvertimePay     int
	LateNightPay    int
	AllowanceAmount int
	DeductionAmount int
	GrossPay        int
	NetPay          int

	GeneratedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}
