package payroll

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrPayslipAlreadyExists = errors.New("payslip already generated for this month")
	ErrMonthNotClosed       = errors.New("payroll month is not over yet")
)
