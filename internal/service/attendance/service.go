package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
	"github.com/kintaihq/kintai-backend-go/internal/domain/notification"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/database"
	"github.com/kintaihq/kintai-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	notificationService notification.NotificationService

	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	notificationService notification.NotificationService,
	loc *time.Location,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		notificationService:  notificationService,
		loc:                  loc,
		now:                  now,
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

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format("2006-01-02 15:04:05")
	return &format
}

// toResponse renders a record with its display labels. Stored statistics
// win over local recomputation; unavailable values render as "-".
func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	localIn := localTimePtr(att.ClockIn, a.loc)
	localOut := localTimePtr(att.ClockOut, a.loc)

	resp := attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		WorkDate:      att.WorkDate.Format("2006-01-02"),
		ClockIn:       timePtrToString(att.ClockIn, a.loc),
		ClockInLabel:  attendance.ClockLabel(localIn),
		ClockOut:      timePtrToString(att.ClockOut, a.loc),
		ClockOutLabel: attendance.ClockLabel(localOut),
		Breaks:        []attendance.BreakResponse{},

		Status:          attendance.DeriveStatus(att.ClockIn, att.ClockOut, att.Breaks),
		NeedsCorrection: att.NeedsCorrection,
		Memo:            att.Memo,
		UpdatedBy:       att.UpdatedBy,
		CreatedAt:       att.CreatedAt.In(a.loc).Format("2006-01-02 15:04:05"),
		UpdatedAt:       att.UpdatedAt.In(a.loc).Format("2006-01-02 15:04:05"),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}

	localBreaks := make([]attendance.BreakInterval, len(att.Breaks))
	for i, b := range att.Breaks {
		start := b.Start.In(a.loc)
		localBreaks[i] = attendance.BreakInterval{ID: b.ID, Start: start, End: localTimePtr(b.End, a.loc)}

		br := attendance.BreakResponse{
			ID:         b.ID,
			Start:      start.Format("2006-01-02 15:04:05"),
			StartLabel: attendance.ClockLabel(&start),
			End:        timePtrToString(b.End, a.loc),
			EndLabel:   attendance.ClockLabel(localTimePtr(b.End, a.loc)),
		}
		resp.Breaks = append(resp.Breaks, br)
	}

	resp.BreakMinutes = attendance.BreakMinutes(localBreaks)
	breakMin := resp.BreakMinutes
	resp.BreakLabel = attendance.MinutesLabel(&breakMin)

	localized := att
	localized.ClockIn = localIn
	localized.ClockOut = localOut
	localized.Breaks = localBreaks
	total, overtime, lateNight := attendance.RecordStats(localized)
	resp.TotalWorkMinutes = total
	resp.TotalWorkLabel = attendance.MinutesLabel(total)
	resp.OvertimeMinutes = overtime
	resp.OvertimeLabel = attendance.MinutesLabel(overtime)
	resp.LateNightMinutes = lateNight
	resp.LateNightLabel = attendance.MinutesLabel(lateNight)

	return resp
}

func localTimePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	lt := t.In(loc)
	return &lt
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if employeeID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	now := a.now().In(a.loc)
	workDay := attendance.WorkDayFor(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndWorkDay(ctx, employeeID, workDay)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	if err == nil {
		if existing.ClockIn != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
		// Correction left a record without a clock-in; fill it rather
		// than violating the one-record-per-work-day rule.
		existing.ClockIn = &now
		if err := a.AttendanceRepository.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return a.toResponse(existing), nil
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		WorkDate:   workDay,
		ClockIn:    &now,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	att, err := a.activeRecord(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch att.Status() {
	case attendance.StatusNotStarted:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case attendance.StatusCompleted:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	case attendance.StatusOnBreak:
		return attendance.AttendanceResponse{}, attendance.ErrBreakOpen
	}

	now := a.now().In(a.loc)
	att.ClockOut = &now

	// Persist the statistics at close so every later read agrees.
	localIn := att.ClockIn.In(a.loc)
	stats, ok := attendance.ComputeWorkStats(localIn, &now, attendance.BreakMinutes(localBreaks(att.Breaks, a.loc)))
	if ok {
		att.TotalWorkMinutes = &stats.TotalWorkMinutes
		att.OvertimeMinutes = &stats.OvertimeMinutes
		att.LateNightMinutes = &stats.LateNightMinutes
	}

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(att), nil
}

func localBreaks(breaks []attendance.BreakInterval, loc *time.Location) []attendance.BreakInterval {
	out := make([]attendance.BreakInterval, len(breaks))
	for i, b := range breaks {
		out[i] = attendance.BreakInterval{ID: b.ID, Start: b.Start.In(loc), End: localTimePtr(b.End, loc)}
	}
	return out
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	att, err := a.activeRecord(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch att.Status() {
	case attendance.StatusNotStarted:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case attendance.StatusCompleted:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	case attendance.StatusOnBreak:
		return attendance.AttendanceResponse{}, attendance.ErrBreakOpen
	}

	now := a.now().In(a.loc)
	b, err := a.AttendanceRepository.AddBreak(ctx, att.ID, attendance.BreakInterval{Start: now})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	att.Breaks = append(att.Breaks, b)

	return a.toResponse(att), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	att, err := a.activeRecord(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	open := att.OpenBreak()
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenBreak
	}

	now := a.now().In(a.loc)
	if err := a.AttendanceRepository.CloseBreak(ctx, open.ID, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	open.End = &now

	return a.toResponse(att), nil
}

// activeRecord loads the caller's record for the active work-day.
func (a *AttendanceServiceImpl) activeRecord(ctx context.Context) (attendance.Attendance, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if employeeID == "" {
		return attendance.Attendance{}, attendance.ErrUnauthorized
	}

	now := a.now().In(a.loc)
	workDay := attendance.WorkDayFor(now)

	att, err := a.AttendanceRepository.GetByEmployeeAndWorkDay(ctx, employeeID, workDay)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if employeeID == "" {
		return attendance.StatusResponse{}, attendance.ErrUnauthorized
	}

	now := a.now().In(a.loc)
	workDay := attendance.WorkDayFor(now)

	resp := attendance.StatusResponse{
		WorkDate:        workDay.Format("2006-01-02"),
		Status:          attendance.StatusNotStarted,
		MissingClockOut: []attendance.AttendanceResponse{},
	}

	att, err := a.AttendanceRepository.GetByEmployeeAndWorkDay(ctx, employeeID, workDay)
	if err == nil {
		r := a.toResponse(att)
		resp.Status = r.Status
		resp.Today = &r
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.StatusResponse{}, err
	}
	resp.Gates = attendance.GatesFor(resp.Status)

	open, err := a.AttendanceRepository.ListOpenBefore(ctx, workDay)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	for _, o := range open {
		if o.EmployeeID != employeeID {
			continue
		}
		if attendance.IsMissingClockOut(o, workDay) {
			resp.MissingClockOut = append(resp.MissingClockOut, a.toResponse(o))
		}
	}

	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if employeeID == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return a.toListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	_, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if !role.CanManage() {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return a.toListResponse(records, total, filter.Page, filter.Limit), nil
}

func (a *AttendanceServiceImpl) toListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Attendances: []attendance.AttendanceResponse{},
	}

	for _, r := range records {
		resp.Attendances = append(resp.Attendances, a.toResponse(r))
	}

	from := (page-1)*limit + 1
	to := (page-1)*limit + len(records)
	if len(records) == 0 {
		from = 0
	}
	resp.Showing = fmt.Sprintf("%d-%d of %d", from, to, total)

	return resp
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !role.CanManage() && att.EmployeeID != employeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return a.toResponse(att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	userID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !role.CanManage() {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	parsed, err := req.ValidateAndParse(a.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		att, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		att.ClockIn = parsed.ClockIn
		att.ClockOut = parsed.ClockOut
		att.Breaks = parsed.Breaks
		if parsed.Memo != nil {
			att.Memo = parsed.Memo
		}
		att.UpdatedBy = &userID
		att.NeedsCorrection = false

		// Recompute and store the statistics from the corrected fields.
		att.TotalWorkMinutes = nil
		att.OvertimeMinutes = nil
		att.LateNightMinutes = nil
		if att.ClockIn != nil {
			stats, ok := attendance.ComputeWorkStats(*att.ClockIn, att.ClockOut, attendance.BreakMinutes(att.Breaks))
			if ok {
				att.TotalWorkMinutes = &stats.TotalWorkMinutes
				att.OvertimeMinutes = &stats.OvertimeMinutes
				att.LateNightMinutes = &stats.LateNightMinutes
			}
		}

		if err := a.AttendanceRepository.ReplaceBreaks(txCtx, att.ID, att.Breaks); err != nil {
			return err
		}
		if err := a.AttendanceRepository.Update(txCtx, att); err != nil {
			return err
		}

		updated = att
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Re-read outside the transaction so break IDs are the stored ones.
	fresh, err := a.AttendanceRepository.GetByID(ctx, updated.ID)
	if err != nil {
		return a.toResponse(updated), nil
	}
	return a.toResponse(fresh), nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, month string) (attendance.SummaryResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	if employeeID == "" {
		return attendance.SummaryResponse{}, attendance.ErrUnauthorized
	}

	monthStart, err := time.ParseInLocation("2006-01", month, a.loc)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("month must be in YYYY-MM format")
	}

	records, err := a.AttendanceRepository.ListForMonth(ctx, employeeID, monthStart)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	resp := attendance.SummaryResponse{Month: month}
	for _, r := range records {
		if r.ClockIn == nil {
			continue
		}
		resp.DaysWorked++
		resp.BreakMinutes += attendance.BreakMinutes(localBreaks(r.Breaks, a.loc))

		total, overtime, lateNight := attendance.RecordStats(r)
		if total != nil {
			resp.TotalWorkMinutes += *total
		}
		if overtime != nil {
			resp.OvertimeMinutes += *overtime
		}
		if lateNight != nil {
			resp.LateNightMinutes += *lateNight
		}
	}

	resp.TotalWorkLabel = attendance.MinutesLabel(&resp.TotalWorkMinutes)
	resp.OvertimeLabel = attendance.MinutesLabel(&resp.OvertimeMinutes)
	resp.LateNightLabel = attendance.MinutesLabel(&resp.LateNightMinutes)
	resp.BreakLabel = attendance.MinutesLabel(&resp.BreakMinutes)

	return resp, nil
}

// SweepMissingClockOuts implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SweepMissingClockOuts(ctx context.Context) error {
	now := a.now().In(a.loc)
	activeWorkDay := attendance.WorkDayFor(now)

	open, err := a.AttendanceRepository.ListOpenBefore(ctx, activeWorkDay)
	if err != nil {
		return err
	}

	for _, att := range open {
		if !attendance.IsMissingClockOut(att, activeWorkDay) || att.NeedsCorrection {
			continue
		}

		att.NeedsCorrection = true
		if err := a.AttendanceRepository.Update(ctx, att); err != nil {
			return err
		}

		emp, err := a.EmployeeRepository.GetByID(ctx, att.EmployeeID)
		if err != nil || emp.UserID == nil {
			continue
		}
		_ = a.notificationService.Notify(ctx, *emp.UserID, notification.TypeMissingClockOut,
			"Missing clock-out",
			fmt.Sprintf("Your shift on %s has no clock-out. Please request a correction.", att.WorkDate.Format("2006-01-02")),
		)
	}

	return nil
}
