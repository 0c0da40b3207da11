// Package availability derives, for any calendar date, which appointment
// slots exist, which are bookable, and how date navigation (next available,
// week grids) behaves against that derived data. Classification is stateless:
// it is recomputed on every query from the wall clock, a closed-day rule and
// a deterministic hash of the (date, time) pair.
package availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/junovet/booking-engine/internal/schedule"
)

// SlotStatus classifies a single (date, time) slot at query time.
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "available"
	StatusBooked      SlotStatus = "booked"
	StatusUnavailable SlotStatus = "unavailable"
)

// ClosedRule reports whether the clinic is closed on the given calendar date.
// Exactly one rule is active per deployment.
type ClosedRule func(date time.Time) bool

// FixedClosure closes a single recurring month/day, e.g. the Feb 18 clinic
// holiday.
func FixedClosure(month time.Month, day int) ClosedRule {
	return func(date time.Time) bool {
		return date.Month() == month && date.Day() == day
	}
}

// WeekendsClosed closes every Saturday and Sunday.
func WeekendsClosed(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DefaultClosure is the canonical deployment rule: closed Feb 18.
var DefaultClosure = FixedClosure(time.February, 18)

// Oracle classifies slots. It is pure apart from reading the wall clock, so
// the same (date, time) pair can change classification as time advances.
type Oracle struct {
	sched  *schedule.Schedule
	closed ClosedRule
	now    func() time.Time
}

// NewOracle builds an oracle over the given schedule and closed-day rule.
// A nil now defaults to time.Now; tests inject a fixed clock.
func NewOracle(sched *schedule.Schedule, closed ClosedRule, now func() time.Time) *Oracle {
	if sched == nil {
		sched = schedule.Default()
	}
	if closed == nil {
		closed = DefaultClosure
	}
	if now == nil {
		now = time.Now
	}
	return &Oracle{sched: sched, closed: closed, now: now}
}

// Classify returns the status of the slot at token on date. Precedence:
// closed date, then past cutoff, then the deterministic selector. date is a
// CalendarDate (normalized to local midnight); token must be a canonical
// "HH:MM" value from the schedule.
func (o *Oracle) Classify(date time.Time, token string) SlotStatus {
	day := StartOfDay(date)

	if o.closed(day) {
		return StatusUnavailable
	}

	if slotTime(day, token).Before(o.now()) {
		return StatusUnavailable
	}

	return statusForSelector(selectorFor(day, token))
}

// Schedule returns the slot grid this oracle classifies against.
func (o *Oracle) Schedule() *schedule.Schedule {
	return o.sched
}

// Now reads the oracle's clock.
func (o *Oracle) Now() time.Time {
	return o.now()
}

// slotTime composes the calendar date and "HH:MM" token into a point in time.
func slotTime(day time.Time, token string) time.Time {
	parts := strings.SplitN(token, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

// selectorFor is the deterministic pseudo-random selector: the date's epoch
// milliseconds at local midnight plus the character code of the token's first
// character, mod 100.
func selectorFor(day time.Time, token string) int64 {
	return (day.UnixMilli() + int64(token[0])) % 100
}

// statusForSelector applies the fixed 25/90 thresholds.
func statusForSelector(sel int64) SlotStatus {
	switch {
	case sel < 25:
		return StatusBooked
	case sel < 90:
		return StatusAvailable
	default:
		return StatusUnavailable
	}
}
