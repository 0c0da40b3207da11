package schedule

import (
	"regexp"
	"testing"
)

func TestDefaultScheduleTimes(t *testing.T) {
	s := Default()
	times := s.Times()

	if len(times) != 16 {
		t.Fatalf("expected 16 slots for 9-17/30, got %d", len(times))
	}
	if times[0] != "09:00" {
		t.Errorf("expected first slot 09:00, got %s", times[0])
	}
	if times[len(times)-1] != "16:30" {
		t.Errorf("expected last slot 16:30, got %s", times[len(times)-1])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Errorf("slot order violated at %d: %s <= %s", i, times[i], times[i-1])
		}
	}
}

func TestCustomHours(t *testing.T) {
	s := New(Hours{StartHour: 8, EndHour: 10, IntervalMinutes: 15})
	times := s.Times()
	want := []string{"08:00", "08:15", "08:30", "08:45", "09:00", "09:15", "09:30", "09:45"}
	if len(times) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(times))
	}
	for i, w := range want {
		if times[i] != w {
			t.Errorf("slot %d: expected %s, got %s", i, w, times[i])
		}
	}
}

func TestTimesStableAcrossCalls(t *testing.T) {
	s := Default()
	a := s.Times()
	b := s.Times()
	if &a[0] != &b[0] {
		t.Error("Times() should return the shared precomputed slice")
	}
}

func TestFormatTime24To12(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 am"},
		{"00:30", "12:30 am"},
		{"09:00", "9:00 am"},
		{"09:30", "9:30 am"},
		{"11:59", "11:59 am"},
		{"12:00", "12:00 pm"},
		{"12:30", "12:30 pm"},
		{"13:00", "1:00 pm"},
		{"16:30", "4:30 pm"},
		{"23:05", "11:05 pm"},
	}
	for _, tt := range tests {
		if got := FormatTime24To12(tt.in); got != tt.want {
			t.Errorf("FormatTime24To12(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime24To12Shape(t *testing.T) {
	re := regexp.MustCompile(`^(1[0-2]|[1-9]):[0-5][0-9] (am|pm)$`)
	for _, token := range Default().Times() {
		got := FormatTime24To12(token)
		if !re.MatchString(got) {
			t.Errorf("FormatTime24To12(%q) = %q does not match display shape", token, got)
		}
	}
}
