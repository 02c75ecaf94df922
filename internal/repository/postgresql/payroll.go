package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/payroll"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payslipColumns = `
	p.id, p.employee_id, p.month,
	p.work_days, p.total_work_minutes, p.overtime_minutes, p.late_night_minutes, p.leave_days,
	p.base_salary, p.overtime_pay, p.late_night_pay,
	p.allowance_amount, p.deduction_amount, p.gross_pay, p.net_pay,
	p.generated_by, p.created_at, p.updated_at
`

func scanPayslip(row pgx.Row, withEmployee bool) (payroll.Payslip, error) {
	var slip payroll.Payslip
	dests := []interface{}{
		&slip.ID, &slip.EmployeeID, &slip.Month,
		&slip.WorkDays, &slip.TotalWorkMinutes, &slip.OvertimeMinutes, &slip.LateNightMinutes, &slip.LeaveDays,
		&slip.BaseSalary, &slip.OvertimePay, &slip.LateNightPay,
		&slip.AllowanceAmount, &slip.DeductionAmount, &slip.GrossPay, &slip.NetPay,
		&slip.GeneratedBy, &slip.CreatedAt, &slip.UpdatedAt,
	}
	if withEmployee {
		dests = append(dests, &slip.EmployeeName, &slip.EmployeeCode)
	}
	err := row.Scan(dests...)
	return slip, err
}

// Create implements payroll.PayrollRepository. Regeneration for the same
// employee and month replaces the stored slip.
func (r *payrollRepository) Create(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, month,
			work_days, total_work_minutes, overtime_minutes, late_night_minutes, leave_days,
			base_salary, overtime_pay, late_night_pay,
			allowance_amount, deduction_amount, gross_pay, net_pay, generated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			work_days = EXCLUDED.work_days,
			total_work_minutes = EXCLUDED.total_work_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			late_night_minutes = EXCLUDED.late_night_minutes,
			leave_days = EXCLUDED.leave_days,
			base_salary = EXCLUDED.base_salary,
			overtime_pay = EXCLUDED.overtime_pay,
			late_night_pay = EXCLUDED.late_night_pay,
			allowance_amount = EXCLUDED.allowance_amount,
			deduction_amount = EXCLUDED.deduction_amount,
			gross_pay = EXCLUDED.gross_pay,
			net_pay = EXCLUDED.net_pay,
			generated_by = EXCLUDED.generated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		slip.EmployeeID, slip.Month,
		slip.WorkDays, slip.TotalWorkMinutes, slip.OvertimeMinutes, slip.LateNightMinutes, slip.LeaveDays,
		slip.BaseSalary, slip.OvertimePay, slip.LateNightPay,
		slip.AllowanceAmount, slip.DeductionAmount, slip.GrossPay, slip.NetPay, slip.GeneratedBy,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}

	return slip, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `, e.full_name, e.code
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return slip, nil
}

// GetByEmployeeAndMonth implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		WHERE p.employee_id = $1
		  AND p.month = $2
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, employeeID, month), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by month: %w", err)
	}

	return slip, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, slip payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET work_days = $2,
			total_work_minutes = $3,
			overtime_minutes = $4,
			late_night_minutes = $5,
			leave_days = $6,
			base_salary = $7,
			overtime_pay = $8,
			late_night_pay = $9,
			allowance_amount = $10,
			deduction_amount = $11,
			gross_pay = $12,
			net_pay = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		slip.ID,
		slip.WorkDays, slip.TotalWorkMinutes, slip.OvertimeMinutes, slip.LateNightMinutes, slip.LeaveDays,
		slip.BaseSalary, slip.OvertimePay, slip.LateNightPay,
		slip.AllowanceAmount, slip.DeductionAmount, slip.GrossPay, slip.NetPay,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil && *filter.Month != "" {
		baseWhere += fmt.Sprintf(" AND p.month = ($%d || '-01')::date", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payslips p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+payslipColumns+`, e.full_name, e.code
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.month DESC, e.code ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return slips, total, nil
}
