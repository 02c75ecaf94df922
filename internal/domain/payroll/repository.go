package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	Create(ctx context.Context, slip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) (Payslip, error)
	Update(ctx context.Context, slip Payslip) error
	List(ctx context.Context, filter PayrollFilter) ([]Payslip, int64, error)
}
