package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttendanceService returns canned results so the handler's JSON
// envelope and status-code mapping can be tested in isolation.
type stubAttendanceService struct {
	clockInResp attendance.AttendanceResponse
	clockInErr  error
	clockOutErr error
	statusResp  attendance.StatusResponse
	summaryResp attendance.SummaryResponse
	summaryErr  error
}

func (s *stubAttendanceService) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	return s.clockInResp, s.clockInErr
}

func (s *stubAttendanceService) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, s.clockOutErr
}

func (s *stubAttendanceService) StartBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	return s.statusResp, nil
}

func (s *stubAttendanceService) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (s *stubAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) GetSummary(ctx context.Context, month string) (attendance.SummaryResponse, error) {
	return s.summaryResp, s.summaryErr
}

func (s *stubAttendanceService) SweepMissingClockOuts(ctx context.Context) error { return nil }

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAttendanceHandler_ClockIn_Success(t *testing.T) {
	stub := &stubAttendanceService{
		clockInResp: attendance.AttendanceResponse{
			ID:       "att-1",
			WorkDate: "2026-04-01",
			Status:   attendance.StatusWorking,
		},
	}
	handler := NewAttendanceHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/clock-in", nil)
	rec := httptest.NewRecorder()
	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Clocked in", body["message"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "att-1", data["id"])
	assert.Equal(t, "working", data["status"])
}

func TestAttendanceHandler_ClockIn_AlreadyClockedIn(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{clockInErr: attendance.ErrAlreadyClockedIn})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/clock-in", nil)
	rec := httptest.NewRecorder()
	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestAttendanceHandler_ClockOut_BreakStillOpen(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{clockOutErr: attendance.ErrBreakOpen})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/clock-out", nil)
	rec := httptest.NewRecorder()
	handler.ClockOut(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_Status(t *testing.T) {
	stub := &stubAttendanceService{
		statusResp: attendance.StatusResponse{
			WorkDate: "2026-04-01",
			Status:   attendance.StatusNotStarted,
			Gates:    attendance.GatesFor(attendance.StatusNotStarted),
		},
	}
	handler := NewAttendanceHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendances/status", nil)
	rec := httptest.NewRecorder()
	handler.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "not_started", data["status"])

	gates, ok := data["gates"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, gates["can_clock_in"])
	assert.Equal(t, false, gates["can_clock_out"])
}

func TestAttendanceHandler_Summary_RequiresMonth(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendances/summary", nil)
	rec := httptest.NewRecorder()
	handler.Summary(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
