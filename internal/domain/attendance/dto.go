package attendance

import (
	"strings"
	"time"

	"github.com/kintaihq/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type BreakResponse struct {
	ID         string  `json:"id"`
	Start      string  `json:"start"`
	StartLabel string  `json:"start_label"`
	End        *string `json:"end,omitempty"`
	EndLabel   string  `json:"end_label"`
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	WorkDate      string          `json:"work_date"`
	ClockIn       *string         `json:"clock_in,omitempty"`
	ClockInLabel  string          `json:"clock_in_label"`
	ClockOut      *string         `json:"clock_out,omitempty"`
	ClockOutLabel string          `json:"clock_out_label"`
	Breaks        []BreakResponse `json:"breaks"`

	BreakMinutes     int    `json:"break_minutes"`
	BreakLabel       string `json:"break_label"`
	TotalWorkMinutes *int   `json:"total_work_minutes,omitempty"`
	TotalWorkLabel   string `json:"total_work_label"`
	OvertimeMinutes  *int   `json:"overtime_minutes,omitempty"`
	OvertimeLabel    string `json:"overtime_label"`
	LateNightMinutes *int   `json:"late_night_minutes,omitempty"`
	LateNightLabel   string `json:"late_night_label"`

	Status          Status  `json:"status"`
	NeedsCorrection bool    `json:"needs_correction"`
	Memo            *string `json:"memo,omitempty"`
	UpdatedBy       *string `json:"updated_by,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// StatusResponse is the state-machine view for the live clock screen.
type StatusResponse struct {
	WorkDate        string              `json:"work_date"`
	Status          Status              `json:"status"`
	Gates           Gates               `json:"gates"`
	Today           *AttendanceResponse `json:"today,omitempty"`
	MissingClockOut []AttendanceResponse `json:"missing_clock_out"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// SummaryResponse aggregates one employee's month.
type SummaryResponse struct {
	Month            string `json:"month"`
	DaysWorked       int    `json:"days_worked"`
	TotalWorkMinutes int    `json:"total_work_minutes"`
	TotalWorkLabel   string `json:"total_work_label"`
	OvertimeMinutes  int    `json:"overtime_minutes"`
	OvertimeLabel    string `json:"overtime_label"`
	LateNightMinutes int    `json:"late_night_minutes"`
	LateNightLabel   string `json:"late_night_label"`
	BreakMinutes     int    `json:"break_minutes"`
	BreakLabel       string `json:"break_label"`
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	WorkDate     *string `json:"work_date,omitempty"`   // YYYY-MM-DD
	StartDate    *string `json:"start_date,omitempty"`  // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`    // YYYY-MM-DD
	Status       *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // work_date, employee_name, clock_in, clock_out
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"not_started", "working", "on_break", "completed"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: not_started, working, on_break, completed",
			})
		}
	}

	for field, value := range map[string]*string{
		"work_date":  f.WorkDate,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"work_date", "employee_name", "clock_in", "clock_out"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: work_date, employee_name, clock_in, clock_out",
			})
		}
	} else {
		f.SortBy = "work_date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	WorkDate  *string `json:"work_date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (f *MyAttendanceFilter) Validate() error {
	full := AttendanceFilter{
		WorkDate:  f.WorkDate,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Status:    f.Status,
		Page:      f.Page,
		Limit:     f.Limit,
		SortBy:    f.SortBy,
		SortOrder: f.SortOrder,
	}
	if err := full.Validate(); err != nil {
		return err
	}
	f.Page = full.Page
	f.Limit = full.Limit
	f.SortBy = full.SortBy
	f.SortOrder = full.SortOrder
	return nil
}

// ========================================
// MANUAL CORRECTION
// ========================================

type BreakPayload struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// UpdateAttendanceRequest is the manual-correction edit: a full overwrite
// of the record's clock and break fields. Timestamps are civil local time
// ("2006-01-02 15:04" or RFC3339).
type UpdateAttendanceRequest struct {
	ID       string         `json:"-"`
	ClockIn  *string        `json:"clock_in,omitempty"`
	ClockOut *string        `json:"clock_out,omitempty"`
	Breaks   []BreakPayload `json:"breaks"`
	Memo     *string        `json:"memo,omitempty"`
}

// Parsed is the validated form of an UpdateAttendanceRequest.
type ParsedUpdate struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Breaks   []BreakInterval
	Memo     *string
}

// ValidateAndParse checks the correction payload and converts it into
// engine types. Timestamps are interpreted in loc, the fixed attendance
// timezone.
func (r *UpdateAttendanceRequest) ValidateAndParse(loc *time.Location) (ParsedUpdate, error) {
	var errs validator.ValidationErrors
	parsed := ParsedUpdate{Memo: r.Memo}

	if r.ClockIn != nil && *r.ClockIn != "" {
		t, ok := validator.IsValidDateTime(*r.ClockIn, loc)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be a valid timestamp",
			})
		} else {
			t = t.In(loc)
			parsed.ClockIn = &t
		}
	}

	if r.ClockOut != nil && *r.ClockOut != "" {
		t, ok := validator.IsValidDateTime(*r.ClockOut, loc)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be a valid timestamp",
			})
		} else {
			t = t.In(loc)
			parsed.ClockOut = &t
		}
	}

	if parsed.ClockIn == nil && parsed.ClockOut != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out requires a clock_in",
		})
	}

	for i, b := range r.Breaks {
		interval := BreakInterval{}
		start, ok := validator.IsValidDateTime(b.Start, loc)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "breaks",
				Message: "break start must be a valid timestamp",
			})
			continue
		}
		interval.Start = start.In(loc)

		if b.End != nil && *b.End != "" {
			end, ok := validator.IsValidDateTime(*b.End, loc)
			if !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "breaks",
					Message: "break end must be a valid timestamp",
				})
				continue
			}
			e := end.In(loc)
			interval.End = &e
		} else if i != len(r.Breaks)-1 {
			errs = append(errs, validator.ValidationError{
				Field:   "breaks",
				Message: "only the last break may be open",
			})
			continue
		}

		parsed.Breaks = append(parsed.Breaks, interval)
	}

	if err := ValidateBreaks(parsed.Breaks); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "breaks",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return ParsedUpdate{}, errs
	}

	return parsed, nil
}
