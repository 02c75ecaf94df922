package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
	"github.com/kintaihq/kintai-backend-go/internal/domain/notification"
	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
	return loc
}()

// fakeAttendanceRepo keeps records in memory so the clock transitions can
// be exercised without a database.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
}

func (f *fakeAttendanceRepo) nextID() string {
	f.seq++
	return fmt.Sprintf("att-%d", f.seq)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.nextID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndWorkDay(ctx context.Context, employeeID string, workDate time.Time) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.records {
		if a.EmployeeID == employeeID && sameDate(a.WorkDate, workDate) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.UpdatedAt = time.Now()
	f.records[a.ID] = a
	return nil
}

func (f *fakeAttendanceRepo) ReplaceBreaks(ctx context.Context, attendanceID string, breaks []attendance.BreakInterval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.records[attendanceID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.Breaks = breaks
	f.records[attendanceID] = a
	return nil
}

func (f *fakeAttendanceRepo) AddBreak(ctx context.Context, attendanceID string, b attendance.BreakInterval) (attendance.BreakInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.records[attendanceID]
	if !ok {
		return attendance.BreakInterval{}, attendance.ErrAttendanceNotFound
	}
	b.ID = fmt.Sprintf("brk-%d", len(a.Breaks)+1)
	a.Breaks = append(a.Breaks, b)
	f.records[attendanceID] = a
	return b, nil
}

func (f *fakeAttendanceRepo) CloseBreak(ctx context.Context, breakID string, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.records {
		for i, b := range a.Breaks {
			if b.ID == breakID {
				if b.End != nil {
					return attendance.ErrNoOpenBreak
				}
				e := end
				a.Breaks[i].End = &e
				f.records[id] = a
				return nil
			}
		}
	}
	return attendance.ErrNoOpenBreak
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range f.records {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListForMonth(ctx context.Context, employeeID string, month time.Time) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	end := month.AddDate(0, 1, 0)
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID == employeeID && !a.WorkDate.Before(month) && a.WorkDate.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, workDay time.Time) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.ClockIn != nil && a.ClockOut == nil && a.WorkDate.Before(workDay) && !sameDate(a.WorkDate, workDay) {
			out = append(out, a)
		}
	}
	return out, nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type sentNotification struct {
	UserID string
	Type   notification.Type
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID string, t notification.Type, title, body string) error {
	f.sent = append(f.sent, sentNotification{UserID: userID, Type: t})
	return nil
}

func (f *fakeNotifier) ListMine(ctx context.Context, limit int) (*notification.ListNotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotifier) MarkAllRead(ctx context.Context) error         { return nil }

func authedContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"email":       employeeID + "@example.com",
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

// testClock is a mutable clock injected into the service.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(value string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", value, testLoc)
	if err != nil {
		panic(err)
	}
	c.now = t
}

func newTestService(t *testing.T) (attendance.AttendanceService, *fakeAttendanceRepo, *fakeEmployeeRepo, *fakeNotifier, *testClock) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	notifier := &fakeNotifier{}
	clock := &testClock{}
	clock.Set("2026-04-01 09:00")
	svc := NewAttendanceService(nil, repo, empRepo, notifier, testLoc, clock.Now)
	return svc, repo, empRepo, notifier, clock
}

func TestAttendanceService_ClockIn(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)
	clock.Set("2026-04-01 09:00")

	resp, err := svc.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", resp.WorkDate)
	assert.Equal(t, attendance.StatusWorking, resp.Status)
	assert.Equal(t, "09:00", resp.ClockInLabel)

	_, err = svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_ClockIn_BeforeBoundaryBelongsToPreviousDay(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	// 01:30 is before the 05:00 boundary, so the shift belongs to the
	// previous civil date and the clock-in renders with the morning mark.
	clock.Set("2026-04-02 01:30")
	resp, err := svc.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", resp.WorkDate)
	assert.Equal(t, "翌朝01:30", resp.ClockInLabel)
}

func TestAttendanceService_ClockIn_WithoutEmployee(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := authedContext(t, "", user.RoleAdmin)

	_, err := svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestAttendanceService_ClockOut_FullDay(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	clock.Set("2026-04-01 09:00")
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-01 12:00")
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-01 13:00")
	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-01 19:00")
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCompleted, resp.Status)
	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 540, *resp.TotalWorkMinutes)
	require.NotNil(t, resp.OvertimeMinutes)
	assert.Equal(t, 60, *resp.OvertimeMinutes)
	assert.Equal(t, 60, resp.BreakMinutes)
	assert.Equal(t, "09:00", resp.TotalWorkLabel)
	assert.Equal(t, "01:00", resp.OvertimeLabel)
}

func TestAttendanceService_ClockOut_AcrossMidnight(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	clock.Set("2026-04-01 18:00")
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	// 02:00 next morning is still work-day 2026-04-01.
	clock.Set("2026-04-02 02:00")
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2026-04-01", resp.WorkDate)
	assert.Equal(t, "翌朝02:00", resp.ClockOutLabel)
	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 480, *resp.TotalWorkMinutes)
	require.NotNil(t, resp.OvertimeMinutes)
	assert.Equal(t, 0, *resp.OvertimeMinutes)
}

func TestAttendanceService_ClockOut_Transitions(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	_, err := svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	clock.Set("2026-04-01 09:00")
	_, err = svc.ClockIn(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-01 12:00")
	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakOpen)

	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakOpen)

	clock.Set("2026-04-01 13:00")
	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)

	_, err = svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)

	clock.Set("2026-04-01 18:00")
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestAttendanceService_GetStatus(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	clock.Set("2026-04-02 08:00")
	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotStarted, status.Status)
	assert.True(t, status.Gates.CanClockIn)
	assert.Nil(t, status.Today)

	_, err = svc.ClockIn(ctx)
	require.NoError(t, err)

	status, err = svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWorking, status.Status)
	assert.True(t, status.Gates.CanClockOut)
	assert.True(t, status.Gates.CanStartBreak)
	require.NotNil(t, status.Today)
	assert.Empty(t, status.MissingClockOut)
}

func TestAttendanceService_GetStatus_ReportsMissingClockOut(t *testing.T) {
	svc, repo, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	// Forgotten shift from the previous work-day.
	clock.Set("2026-04-01 09:00")
	_, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-02 08:00")
	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotStarted, status.Status)
	require.Len(t, status.MissingClockOut, 1)
	assert.Equal(t, "2026-04-01", status.MissingClockOut[0].WorkDate)

	// Another employee's open shift stays out of this user's status.
	otherIn := time.Date(2026, 4, 1, 10, 0, 0, 0, testLoc)
	_, err = repo.Create(context.Background(), attendance.Attendance{
		EmployeeID: "emp-2",
		WorkDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, testLoc),
		ClockIn:    &otherIn,
	})
	require.NoError(t, err)

	status, err = svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.Len(t, status.MissingClockOut, 1)
}

func TestAttendanceService_ListAttendance_RequiresManager(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.ListAttendance(authedContext(t, "emp-1", user.RoleEmployee), attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.ListAttendance(authedContext(t, "emp-9", user.RoleManager), attendance.AttendanceFilter{})
	assert.NoError(t, err)
}

func TestAttendanceService_GetAttendance_OwnerOrManager(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	owner := authedContext(t, "emp-1", user.RoleEmployee)

	clock.Set("2026-04-01 09:00")
	created, err := svc.ClockIn(owner)
	require.NoError(t, err)

	_, err = svc.GetAttendance(owner, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetAttendance(authedContext(t, "emp-2", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.GetAttendance(authedContext(t, "emp-9", user.RoleManager), created.ID)
	assert.NoError(t, err)
}

func TestAttendanceService_GetSummary(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	for day := 1; day <= 2; day++ {
		clock.Set(fmt.Sprintf("2026-04-%02d 09:00", day))
		_, err := svc.ClockIn(ctx)
		require.NoError(t, err)
		clock.Set(fmt.Sprintf("2026-04-%02d 18:00", day))
		_, err = svc.ClockOut(ctx)
		require.NoError(t, err)
	}

	summary, err := svc.GetSummary(ctx, "2026-04")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.DaysWorked)
	assert.Equal(t, 1080, summary.TotalWorkMinutes)
	assert.Equal(t, 120, summary.OvertimeMinutes)
	assert.Equal(t, "18:00", summary.TotalWorkLabel)

	_, err = svc.GetSummary(ctx, "04-2026")
	assert.Error(t, err)
}

func TestAttendanceService_SweepMissingClockOuts(t *testing.T) {
	svc, repo, empRepo, notifier, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	userID := "user-emp-1"
	empRepo.employees["emp-1"] = employee.Employee{ID: "emp-1", UserID: &userID}

	clock.Set("2026-04-01 09:00")
	created, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	// Next work-day: the open shift is now flagged and its owner notified.
	clock.Set("2026-04-02 06:00")
	require.NoError(t, svc.SweepMissingClockOuts(context.Background()))

	att, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, att.NeedsCorrection)
	require.NotNil(t, att.ClockIn)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, userID, notifier.sent[0].UserID)
	assert.Equal(t, notification.TypeMissingClockOut, notifier.sent[0].Type)

	// Re-running the sweep does not notify twice.
	require.NoError(t, svc.SweepMissingClockOuts(context.Background()))
	assert.Len(t, notifier.sent, 1)
}

func TestAttendanceService_Sweep_SkipsActiveWorkDay(t *testing.T) {
	svc, repo, _, notifier, clock := newTestService(t)
	ctx := authedContext(t, "emp-1", user.RoleEmployee)

	// Overnight shift still within its work-day at 02:00.
	clock.Set("2026-04-01 22:00")
	created, err := svc.ClockIn(ctx)
	require.NoError(t, err)

	clock.Set("2026-04-02 02:00")
	require.NoError(t, svc.SweepMissingClockOuts(context.Background()))

	att, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, att.NeedsCorrection)
	assert.Empty(t, notifier.sent)
}
