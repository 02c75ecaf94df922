package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.work_date,
	a.clock_in, a.clock_out,
	a.total_work_minutes, a.overtime_minutes, a.late_night_minutes,
	a.memo, a.needs_correction, a.updated_by,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.WorkDate,
		&att.ClockIn, &att.ClockOut,
		&att.TotalWorkMinutes, &att.OvertimeMinutes, &att.LateNightMinutes,
		&att.Memo, &att.NeedsCorrection, &att.UpdatedBy,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, work_date, clock_in, clock_out,
			total_work_minutes, overtime_minutes, late_night_minutes,
			memo, needs_correction, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.WorkDate,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.TotalWorkMinutes,
		newAttendance.OvertimeMinutes,
		newAttendance.LateNightMinutes,
		newAttendance.Memo,
		newAttendance.NeedsCorrection,
		newAttendance.UpdatedBy,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.WorkDate,
		&att.ClockIn, &att.ClockOut,
		&att.TotalWorkMinutes, &att.OvertimeMinutes, &att.LateNightMinutes,
		&att.Memo, &att.NeedsCorrection, &att.UpdatedBy,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if err := a.loadBreaks(ctx, []*attendance.Attendance{&att}); err != nil {
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetByEmployeeAndWorkDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndWorkDay(ctx context.Context, employeeID string, workDate time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.work_date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by work day: %w", err)
	}

	if err := a.loadBreaks(ctx, []*attendance.Attendance{&att}); err != nil {
		return attendance.Attendance{}, err
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $2,
			clock_out = $3,
			total_work_minutes = $4,
			overtime_minutes = $5,
			late_night_minutes = $6,
			memo = $7,
			needs_correction = $8,
			updated_by = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.ClockIn,
		att.ClockOut,
		att.TotalWorkMinutes,
		att.OvertimeMinutes,
		att.LateNightMinutes,
		att.Memo,
		att.NeedsCorrection,
		att.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ReplaceBreaks implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReplaceBreaks(ctx context.Context, attendanceID string, breaks []attendance.BreakInterval) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_breaks WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("failed to clear breaks: %w", err)
	}

	query := `
		INSERT INTO attendance_breaks (attendance_id, break_start, break_end)
		VALUES ($1, $2, $3)
	`
	for _, b := range breaks {
		if _, err := q.Exec(ctx, query, attendanceID, b.Start, b.End); err != nil {
			return fmt.Errorf("failed to insert break: %w", err)
		}
	}

	return nil
}

// AddBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) AddBreak(ctx context.Context, attendanceID string, b attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_breaks (attendance_id, break_start, break_end)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := q.QueryRow(ctx, query, attendanceID, b.Start, b.End).Scan(&b.ID); err != nil {
		return attendance.BreakInterval{}, fmt.Errorf("failed to add break: %w", err)
	}

	return b, nil
}

// CloseBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseBreak(ctx context.Context, breakID string, end time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_breaks
		SET break_end = $2
		WHERE id = $1
		  AND break_end IS NULL
	`

	tag, err := q.Exec(ctx, query, breakID, end)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.WorkDate != nil && *filter.WorkDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date = $%d", argIdx)
		args = append(args, *filter.WorkDate)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Status is derived, not stored; translate each value to its clock
	// and break predicates.
	if filter.Status != nil && *filter.Status != "" {
		switch *filter.Status {
		case string(attendance.StatusCompleted):
			baseWhere += " AND a.clock_out IS NOT NULL"
		case string(attendance.StatusOnBreak):
			baseWhere += ` AND a.clock_out IS NULL AND EXISTS (
				SELECT 1 FROM attendance_breaks b
				WHERE b.attendance_id = a.id AND b.break_end IS NULL
			)`
		case string(attendance.StatusWorking):
			baseWhere += ` AND a.clock_in IS NOT NULL AND a.clock_out IS NULL AND NOT EXISTS (
				SELECT 1 FROM attendance_breaks b
				WHERE b.attendance_id = a.id AND b.break_end IS NULL
			)`
		case string(attendance.StatusNotStarted):
			baseWhere += " AND a.clock_in IS NULL"
		}
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.work_date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "clock_in":
		orderByField = "a.clock_in"
	case "clock_out":
		orderByField = "a.clock_out"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`, e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	attendances, err := a.queryAttendances(ctx, q, selectQuery, args, true)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	full := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		WorkDate:   filter.WorkDate,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	return a.List(ctx, full)
}

// ListForMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.work_date >= $2
		  AND a.work_date < $3
		ORDER BY a.work_date ASC
	`

	attendances, err := a.queryAttendances(ctx, q, query, []interface{}{employeeID, start, end}, false)
	if err != nil {
		return nil, err
	}

	return attendances, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, workDay time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.clock_in IS NOT NULL
		  AND a.clock_out IS NULL
		  AND a.work_date < $1
		ORDER BY a.work_date ASC
	`

	attendances, err := a.queryAttendances(ctx, q, query, []interface{}{workDay}, false)
	if err != nil {
		return nil, err
	}

	return attendances, nil
}

func (a *attendanceRepository) queryAttendances(ctx context.Context, q database.Querier, query string, args []interface{}, withName bool) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		dests := []interface{}{
			&att.ID, &att.EmployeeID, &att.WorkDate,
			&att.ClockIn, &att.ClockOut,
			&att.TotalWorkMinutes, &att.OvertimeMinutes, &att.LateNightMinutes,
			&att.Memo, &att.NeedsCorrection, &att.UpdatedBy,
			&att.CreatedAt, &att.UpdatedAt,
		}
		if withName {
			dests = append(dests, &att.EmployeeName)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	ptrs := make([]*attendance.Attendance, len(attendances))
	for i := range attendances {
		ptrs[i] = &attendances[i]
	}
	if err := a.loadBreaks(ctx, ptrs); err != nil {
		return nil, err
	}

	return attendances, nil
}

// loadBreaks attaches break intervals to the given records, in break_start
// order.
func (a *attendanceRepository) loadBreaks(ctx context.Context, records []*attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	ids := make([]string, len(records))
	byID := make(map[string]*attendance.Attendance, len(records))
	for i, r := range records {
		ids[i] = r.ID
		byID[r.ID] = r
	}

	query := `
		SELECT id, attendance_id, break_start, break_end
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b            attendance.BreakInterval
			attendanceID string
		)
		if err := rows.Scan(&b.ID, &attendanceID, &b.Start, &b.End); err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		if r, ok := byID[attendanceID]; ok {
			r.Breaks = append(r.Breaks, b)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return nil
}
