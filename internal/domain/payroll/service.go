package payroll

import "context"

type PayrollService interface {
	// GeneratePayroll builds payslips for the given month, either for a
	// single employee or for every active employee. Regeneration replaces
	// the existing slip.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (*ListPayrollResponse, error)
	GetPayslip(ctx context.Context, id string) (*PayslipResponse, error)
	ListPayroll(ctx context.Context, filter PayrollFilter) (*ListPayrollResponse, error)
}
