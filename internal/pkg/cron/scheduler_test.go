package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	calls := 0
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("counting", time.Hour, func(ctx context.Context) error {
		calls++
		return nil
	})

	// A failing job must not stop the rest of the batch.
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 2, calls)
}

// sweepOnlyService records sweep invocations; no other method is reached.
type sweepOnlyService struct {
	attendance.AttendanceService
	sweeps int
}

func (s *sweepOnlyService) SweepMissingClockOuts(ctx context.Context) error {
	s.sweeps++
	return nil
}

func TestAttendanceJobsRegisterAndRun(t *testing.T) {
	svc := &sweepOnlyService{}
	s := NewScheduler()

	NewAttendanceJobs(svc, 0).RegisterJobs(s)
	s.RunOnce(context.Background())

	assert.Equal(t, 1, svc.sweeps)
}
