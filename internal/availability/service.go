package availability

import (
	"time"

	"github.com/junovet/booking-engine/internal/schedule"
)

// horizonDays caps forward scans for an available date. The cap is fixed; it
// is not exposed to callers.
const horizonDays = 60

// TimeSlot is one offered slot for a day: the canonical token, its 12-hour
// display label and its live classification.
type TimeSlot struct {
	Time   string     `json:"time"`
	Label  string     `json:"label"`
	Status SlotStatus `json:"status"`
}

// DaySlots is a calendar date with its full ordered slot list.
type DaySlots struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Service answers day- and week-level availability queries on top of the
// oracle. All methods are total; "no availability" is a normal result.
type Service struct {
	oracle    *Oracle
	weekStart time.Weekday
}

// NewService builds the query layer. weekStart is the first weekday of the
// displayed week (Sunday for the booking view, Monday for the week grid).
func NewService(oracle *Oracle, weekStart time.Weekday) *Service {
	if oracle == nil {
		oracle = NewOracle(nil, nil, nil)
	}
	return &Service{oracle: oracle, weekStart: weekStart}
}

// Oracle exposes the underlying classifier.
func (s *Service) Oracle() *Oracle {
	return s.oracle
}

// WeekStart returns the configured first weekday of displayed weeks.
func (s *Service) WeekStart() time.Weekday {
	return s.weekStart
}

// SlotsForDay classifies every schedule token for the date, in ascending
// time order.
func (s *Service) SlotsForDay(date time.Time) []TimeSlot {
	tokens := s.oracle.Schedule().Times()
	slots := make([]TimeSlot, 0, len(tokens))
	for _, token := range tokens {
		slots = append(slots, TimeSlot{
			Time:   token,
			Label:  schedule.FormatTime24To12(token),
			Status: s.oracle.Classify(date, token),
		})
	}
	return slots
}

// HasAvailability reports whether the date has at least one available slot.
func (s *Service) HasAvailability(date time.Time) bool {
	for _, token := range s.oracle.Schedule().Times() {
		if s.oracle.Classify(date, token) == StatusAvailable {
			return true
		}
	}
	return false
}

// FirstAvailableFrom scans forward from the reference date (inclusive,
// normalized to midnight) and returns the first date with availability.
// When the horizon is exhausted it falls back to the day after the reference
// date rather than reporting absence.
func (s *Service) FirstAvailableFrom(from time.Time) time.Time {
	start := StartOfDay(from)
	for i := 0; i < horizonDays; i++ {
		candidate := AddDays(start, i)
		if s.HasAvailability(candidate) {
			return candidate
		}
	}
	return AddDays(start, 1)
}

// NextAvailableAfter scans forward starting strictly after the given date and
// returns the first date with availability, or ok=false when no date within
// the horizon qualifies.
func (s *Service) NextAvailableAfter(date time.Time) (time.Time, bool) {
	start := AddDays(StartOfDay(date), 1)
	for i := 0; i < horizonDays; i++ {
		candidate := AddDays(start, i)
		if s.HasAvailability(candidate) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// WeekGrid normalizes weekStart to the canonical first day of week and emits
// slots for the 7 consecutive dates.
func (s *Service) WeekGrid(weekStart time.Time) []DaySlots {
	start := StartOfWeek(weekStart, s.weekStart)
	days := make([]DaySlots, 0, 7)
	for i := 0; i < 7; i++ {
		date := AddDays(start, i)
		days = append(days, DaySlots{
			Date:  date.Format(DateFormat),
			Slots: s.SlotsForDay(date),
		})
	}
	return days
}
