package attendance

import (
	"testing"
	"time"
)

var tokyo = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(day int, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, tokyo)
}

func TestWorkDayFor(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"morning belongs to today", at(15, 9, 0), at(15, 0, 0)},
		{"exactly at boundary belongs to today", at(15, 5, 0), at(15, 0, 0)},
		{"just before boundary belongs to yesterday", at(15, 4, 59), at(14, 0, 0)},
		{"midnight belongs to yesterday", at(15, 0, 0), at(14, 0, 0)},
		{"late evening belongs to today", at(15, 23, 30), at(15, 0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WorkDayFor(c.now)
			if !got.Equal(c.want) {
				t.Errorf("WorkDayFor(%v) = %v, want %v", c.now, got, c.want)
			}
		})
	}
}

func TestClockLabel(t *testing.T) {
	morning := at(15, 9, 0)
	tail := at(16, 2, 30)
	boundary := at(16, 5, 0)

	cases := []struct {
		name string
		in   *time.Time
		want string
	}{
		{"absent renders placeholder", nil, "-"},
		{"plain daytime", &morning, "09:00"},
		{"overnight tail gets next-morning mark", &tail, "翌朝02:30"},
		{"boundary hour is a fresh morning", &boundary, "05:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClockLabel(c.in); got != c.want {
				t.Errorf("ClockLabel = %q, want %q", got, c.want)
			}
		})
	}
}

func TestMinutesLabel(t *testing.T) {
	if got := MinutesLabel(nil); got != "-" {
		t.Errorf("MinutesLabel(nil) = %q, want -", got)
	}

	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{60, "01:00"},
		{480, "08:00"},
		{605, "10:05"},
	}
	for _, c := range cases {
		m := c.minutes
		if got := MinutesLabel(&m); got != c.want {
			t.Errorf("MinutesLabel(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}
