package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate(2024-02-29) = false, want true")
	}
	for _, s := range []string{"2024-13-01", "2024/01/01", "yesterday", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2024-07"); !ok {
		t.Error("IsValidMonth(2024-07) = false, want true")
	}
	for _, s := range []string{"2024-00", "2024-7", "2024-07-01", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		input string
		want  bool
	}{
		{"2024-01-15T10:30:00+09:00", true},
		{"2024-01-15T01:30:00Z", true},
		{"2024-01-15 10:30:00", true},
		{"2024-01-15 10:30", true},
		{"2024-01-15", false},
		{"10:30", false},
		{"", false},
	}
	for _, c := range cases {
		_, got := IsValidDateTime(c.input, loc)
		if got != c.want {
			t.Errorf("IsValidDateTime(%q) = %v, want %v", c.input, got, c.want)
		}
	}

	parsed, ok := IsValidDateTime("2024-01-15 10:30:00", loc)
	if !ok {
		t.Fatal("expected local timestamp to parse")
	}
	if parsed.Location().String() != "Asia/Tokyo" {
		t.Errorf("parsed location = %s, want Asia/Tokyo", parsed.Location())
	}
}
