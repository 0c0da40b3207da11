package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime24To12 converts a 24-hour "HH:MM" token to its 12-hour display
// form, e.g. "09:30" -> "9:30 am", "00:00" -> "12:00 am", "12:00" -> "12:00 pm".
// Callers must only pass canonical tokens produced by a Schedule; malformed
// input is a precondition violation.
func FormatTime24To12(time24 string) string {
	parts := strings.SplitN(time24, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])

	period := "am"
	if h >= 12 {
		period = "pm"
	}

	hour := h
	switch {
	case h == 0:
		hour = 12
	case h > 12:
		hour = h - 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, m, period)
}
