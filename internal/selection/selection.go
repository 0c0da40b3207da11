// Package selection implements the booking widget's cursor: the currently
// visible week, the selected date and the selected time slot, plus the
// transition rules that keep the triple consistent with live availability.
package selection

import (
	"errors"
	"time"

	"github.com/junovet/booking-engine/internal/availability"
)

// AnchorPolicy controls which date seeds a fresh cursor.
type AnchorPolicy string

const (
	// AnchorFirstAvailable starts on the first date with availability,
	// scanning forward from today. This is the booking view behavior.
	AnchorFirstAvailable AnchorPolicy = "first-available"
	// AnchorToday starts on today regardless of availability.
	AnchorToday AnchorPolicy = "today"
)

// Outcome reports how a transition was applied.
type Outcome string

const (
	// OutcomeApplied means the state changed.
	OutcomeApplied Outcome = "applied"
	// OutcomeCleared means a toggle-off cleared the selected time.
	OutcomeCleared Outcome = "cleared"
	// OutcomeRejected means the input was refused and state is unchanged.
	OutcomeRejected Outcome = "rejected"
	// OutcomeNoop means the transition had nothing to do.
	OutcomeNoop Outcome = "noop"
)

// ErrBadSnapshot reports a snapshot whose date fields do not parse.
var ErrBadSnapshot = errors.New("selection: malformed snapshot")

// Snapshot is the serialized cursor: the only externally persisted structure
// tied to the core. Dates round-trip through ISO-8601 strings.
type Snapshot struct {
	WeekStartISO    string  `json:"weekStartIso"`
	SelectedDateISO string  `json:"selectedDateIso"`
	SelectedTime    *string `json:"selectedTime"`
}

// Selection is the user-facing cursor. It holds exactly three fields of
// state; everything else is derived live from the availability service.
// Selection is not safe for concurrent use; the Manager serializes access.
type Selection struct {
	svc          *availability.Service
	weekStart    time.Time
	selectedDate time.Time
	selectedTime string // empty means none
}

// New seeds a cursor per the anchor policy and normalizes the visible week
// around the anchor date.
func New(svc *availability.Service, policy AnchorPolicy) *Selection {
	now := svc.Oracle().Now()
	var anchor time.Time
	if policy == AnchorToday {
		anchor = availability.StartOfDay(now)
	} else {
		anchor = svc.FirstAvailableFrom(now)
	}
	return &Selection{
		svc:          svc,
		weekStart:    availability.StartOfWeek(anchor, svc.WeekStart()),
		selectedDate: anchor,
	}
}

// WeekStart returns the first day of the visible week.
func (s *Selection) WeekStart() time.Time { return s.weekStart }

// SelectedDate returns the selected calendar date.
func (s *Selection) SelectedDate() time.Time { return s.selectedDate }

// SelectedTime returns the selected slot token, or "" when none is selected.
func (s *Selection) SelectedTime() string { return s.selectedTime }

// PageWeek moves the visible week by direction (+1 next, -1 previous) weeks.
// If the selected date falls outside the new week it is reassigned to the
// first date in the week with availability, or the week's first date when
// none qualifies. The selected time survives unless the (possibly new)
// selected date has no available slot.
func (s *Selection) PageWeek(direction int) Outcome {
	if direction == 0 {
		return OutcomeNoop
	}
	s.weekStart = availability.AddDays(s.weekStart, 7*sign(direction))

	if !s.dateInVisibleWeek(s.selectedDate) {
		s.selectedDate = s.firstDateInWeekWithAvailability()
	}
	if s.selectedTime != "" && !s.svc.HasAvailability(s.selectedDate) {
		s.selectedTime = ""
	}
	return OutcomeApplied
}

// SelectDate picks a calendar date. viaPopover re-centers the visible week on
// the picked date, the way the calendar popover does; a tile click leaves the
// week alone. The selected time is cleared only when the new date has no
// available slot.
func (s *Selection) SelectDate(date time.Time, viaPopover bool) Outcome {
	s.selectedDate = availability.StartOfDay(date)
	if viaPopover {
		s.weekStart = availability.StartOfWeek(s.selectedDate, s.svc.WeekStart())
	}
	if s.selectedTime != "" && !s.svc.HasAvailability(s.selectedDate) {
		s.selectedTime = ""
	}
	return OutcomeApplied
}

// SelectTime picks a slot on the selected date. The slot's status is
// re-evaluated at click time: anything but available is rejected, selecting
// the already-selected time toggles it off, and a different available time
// replaces the selection.
func (s *Selection) SelectTime(token string) Outcome {
	if s.svc.Oracle().Classify(s.selectedDate, token) != availability.StatusAvailable {
		return OutcomeRejected
	}
	if s.selectedTime == token {
		s.selectedTime = ""
		return OutcomeCleared
	}
	s.selectedTime = token
	return OutcomeApplied
}

// JumpToNextAvailable moves to the first date with availability strictly
// after the selected date, re-centering the week and clearing the selected
// time. When no date within the horizon qualifies this is a no-op.
func (s *Selection) JumpToNextAvailable() Outcome {
	next, ok := s.svc.NextAvailableAfter(s.selectedDate)
	if !ok {
		return OutcomeNoop
	}
	s.selectedDate = next
	s.weekStart = availability.StartOfWeek(next, s.svc.WeekStart())
	s.selectedTime = ""
	return OutcomeApplied
}

// Snapshot exposes the current state as an immutable plain-data value.
func (s *Selection) Snapshot() Snapshot {
	snap := Snapshot{
		WeekStartISO:    s.weekStart.Format(time.RFC3339),
		SelectedDateISO: s.selectedDate.Format(time.RFC3339),
	}
	if s.selectedTime != "" {
		token := s.selectedTime
		snap.SelectedTime = &token
	}
	return snap
}

// Restore replaces all three state fields from a snapshot, verbatim. The
// restored selected time is NOT re-validated against live availability; the
// staleness risk is accepted.
func (s *Selection) Restore(snap Snapshot) error {
	weekStart, err := time.Parse(time.RFC3339, snap.WeekStartISO)
	if err != nil {
		return ErrBadSnapshot
	}
	selectedDate, err := time.Parse(time.RFC3339, snap.SelectedDateISO)
	if err != nil {
		return ErrBadSnapshot
	}
	s.weekStart = weekStart
	s.selectedDate = selectedDate
	if snap.SelectedTime != nil {
		s.selectedTime = *snap.SelectedTime
	} else {
		s.selectedTime = ""
	}
	return nil
}

func (s *Selection) dateInVisibleWeek(date time.Time) bool {
	day := availability.StartOfDay(date)
	end := availability.AddDays(s.weekStart, 7)
	return !day.Before(s.weekStart) && day.Before(end)
}

func (s *Selection) firstDateInWeekWithAvailability() time.Time {
	for i := 0; i < 7; i++ {
		candidate := availability.AddDays(s.weekStart, i)
		if s.svc.HasAvailability(candidate) {
			return candidate
		}
	}
	return s.weekStart
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
