// Package versions implements the design-version shelf: named snapshots of
// the widget's selection state that can be saved, annotated, removed and
// reverted to. Seed versions always come first; user saves are appended and
// persisted through a pluggable store.
package versions

import (
	"errors"
	"fmt"
	"time"
)

// ErrVersionNotFound reports a revert/remove/update against an unknown id.
var ErrVersionNotFound = errors.New("versions: version not found")

// VersionState is the serialized selection triple carried by every version.
// It is stored verbatim and restored verbatim; availability is never
// re-checked against it.
type VersionState struct {
	WeekStartISO    string  `json:"weekStartIso"`
	SelectedDateISO string  `json:"selectedDateIso"`
	SelectedTime    *string `json:"selectedTime"`
}

// Valid reports whether the state carries both date fields. Entries failing
// this are dropped on load, mirroring the widget's defensive parse.
func (s VersionState) Valid() bool {
	return s.WeekStartISO != "" && s.SelectedDateISO != ""
}

// DesignVersion is one shelf entry.
type DesignVersion struct {
	ID            string       `json:"id"`
	VersionNumber int          `json:"versionNumber"`
	Title         string       `json:"title,omitempty"`
	Note          string       `json:"note,omitempty"`
	SavedAt       time.Time    `json:"savedAt"`
	State         VersionState `json:"state"`
}

// Patch is a partial title/note update. Nil fields are left untouched.
type Patch struct {
	Title *string `json:"title"`
	Note  *string `json:"note"`
}

// SeedVersions returns the fixed starter entries shown before any user save.
// Their state anchors on tomorrow relative to now, week normalized to Sunday.
func SeedVersions(now time.Time) []DesignVersion {
	base := now.AddDate(0, 0, 1)
	weekStart := base.AddDate(0, 0, -int(base.Weekday()))
	state := VersionState{
		WeekStartISO:    weekStart.Format(time.RFC3339),
		SelectedDateISO: base.Format(time.RFC3339),
	}
	return []DesignVersion{
		{
			ID:            "seed-v1",
			VersionNumber: 1,
			Title:         "Initial wireframe",
			SavedAt:       time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			State:         state,
		},
		{
			ID:            "seed-v2",
			VersionNumber: 2,
			Title:         "Location & date picker",
			SavedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			State:         state,
		},
		{
			ID:            "seed-v3",
			VersionNumber: 3,
			Title:         "Full booking flow",
			SavedAt:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			State:         state,
		},
	}
}

// NewID builds a user-save id from its version number and save time.
func NewID(versionNumber int, savedAt time.Time) string {
	return fmt.Sprintf("v%d-%d", versionNumber, savedAt.UnixMilli())
}
