package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/kintaihq/kintai-backend-go/internal/domain/attendance"
)

// AttendanceJobs owns the recurring attendance maintenance work.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	sweepInterval     time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, sweepInterval time.Duration) *AttendanceJobs {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		sweepInterval:     sweepInterval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_missing_clock_outs", j.sweepInterval, j.SweepMissingClockOuts)
}

// SweepMissingClockOuts flags shifts left open past the work-day boundary.
func (j *AttendanceJobs) SweepMissingClockOuts(ctx context.Context) error {
	if err := j.attendanceService.SweepMissingClockOuts(ctx); err != nil {
		slog.Error("Cron: sweep missing clock-outs failed", "error", err)
		return err
	}
	return nil
}
