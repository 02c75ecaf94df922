package attendance

import (
	"testing"
	"time"
)

func TestUpdateAttendanceRequest_ValidateAndParse(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	str := func(s string) *string { return &s }

	cases := []struct {
		name    string
		req     UpdateAttendanceRequest
		wantErr bool
	}{
		{
			"full correction",
			UpdateAttendanceRequest{
				ClockIn:  str("2026-04-01 09:00"),
				ClockOut: str("2026-04-01 18:00"),
				Breaks: []BreakPayload{
					{Start: "2026-04-01 12:00", End: str("2026-04-01 13:00")},
				},
				Memo: str("forgot badge"),
			},
			false,
		},
		{
			"rfc3339 timestamps",
			UpdateAttendanceRequest{
				ClockIn:  str("2026-04-01T09:00:00+09:00"),
				ClockOut: str("2026-04-01T18:00:00+09:00"),
			},
			false,
		},
		{
			"trailing open break",
			UpdateAttendanceRequest{
				ClockIn: str("2026-04-01 09:00"),
				Breaks:  []BreakPayload{{Start: "2026-04-01 12:00"}},
			},
			false,
		},
		{
			"clearing both clocks",
			UpdateAttendanceRequest{},
			false,
		},
		{
			"unparseable clock_in",
			UpdateAttendanceRequest{ClockIn: str("yesterday 9am")},
			true,
		},
		{
			"unparseable break start",
			UpdateAttendanceRequest{
				ClockIn: str("2026-04-01 09:00"),
				Breaks:  []BreakPayload{{Start: "noon"}},
			},
			true,
		},
		{
			"clock_out without clock_in",
			UpdateAttendanceRequest{ClockOut: str("2026-04-01 18:00")},
			true,
		},
		{
			"open break before a later break",
			UpdateAttendanceRequest{
				ClockIn: str("2026-04-01 09:00"),
				Breaks: []BreakPayload{
					{Start: "2026-04-01 12:00"},
					{Start: "2026-04-01 15:00", End: str("2026-04-01 15:30")},
				},
			},
			true,
		},
		{
			"breaks out of order",
			UpdateAttendanceRequest{
				ClockIn: str("2026-04-01 09:00"),
				Breaks: []BreakPayload{
					{Start: "2026-04-01 15:00", End: str("2026-04-01 15:30")},
					{Start: "2026-04-01 12:00", End: str("2026-04-01 12:30")},
				},
			},
			true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.req.ValidateAndParse(loc)
			if (err != nil) != c.wantErr {
				t.Errorf("ValidateAndParse error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

// Local-format timestamps parse in the given location; RFC3339 carries its
// own offset and converts into it.
func TestUpdateAttendanceRequest_ParsesIntoLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	in := "2026-04-01 09:00"
	out := "2026-04-01T18:00:00Z"
	req := UpdateAttendanceRequest{ClockIn: &in, ClockOut: &out}

	parsed, err := req.ValidateAndParse(loc)
	if err != nil {
		t.Fatalf("ValidateAndParse: %v", err)
	}

	want := time.Date(2026, 4, 1, 9, 0, 0, 0, loc)
	if !parsed.ClockIn.Equal(want) {
		t.Errorf("ClockIn = %v, want %v", parsed.ClockIn, want)
	}
	if parsed.ClockOut.Location() != loc {
		t.Errorf("ClockOut location = %v, want %v", parsed.ClockOut.Location(), loc)
	}
	if parsed.ClockOut.Hour() != 3 || parsed.ClockOut.Day() != 2 {
		t.Errorf("ClockOut = %v, want 2026-04-02 03:00 JST", parsed.ClockOut)
	}
}
