// Package schedule defines the clinic's daily slot grid: the canonical set of
// appointment start times offered every day, and the 12-hour display format
// the widget renders them in.
package schedule

import "fmt"

// Hours describes the clinic operating window and slot interval. The window
// is half-open: slots cover [StartHour:00, EndHour:00).
type Hours struct {
	StartHour       int
	EndHour         int
	IntervalMinutes int
}

// DefaultHours is the vet clinic schedule: 9:00-17:00 in 30-minute steps.
var DefaultHours = Hours{StartHour: 9, EndHour: 17, IntervalMinutes: 30}

// Schedule holds the precomputed ordered list of slot tokens for one
// deployment. The list is schedule-dependent, never date-dependent, so it is
// computed once and shared by every availability query.
type Schedule struct {
	hours Hours
	times []string
}

// New precomputes the slot grid for the given hours.
func New(hours Hours) *Schedule {
	var times []string
	for h := hours.StartHour; h < hours.EndHour; h++ {
		for m := 0; m < 60; m += hours.IntervalMinutes {
			times = append(times, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return &Schedule{hours: hours, times: times}
}

// Default returns the schedule for DefaultHours.
func Default() *Schedule {
	return New(DefaultHours)
}

// Times returns the ordered "HH:MM" tokens offered each day. The returned
// slice is shared; callers must not mutate it.
func (s *Schedule) Times() []string {
	return s.times
}

// Hours returns the configured operating window.
func (s *Schedule) Hours() Hours {
	return s.hours
}
