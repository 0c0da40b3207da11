package availability

import "time"

// StartOfDay normalizes t to local midnight of its calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns t moved by n calendar days. Calendar arithmetic keeps
// midnights aligned across DST transitions, unlike adding 24h durations.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfWeek normalizes t to midnight of the most recent weekStart weekday
// (inclusive, so a Sunday normalized to a Sunday-start week stays put).
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := StartOfDay(t)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return AddDays(day, -diff)
}
