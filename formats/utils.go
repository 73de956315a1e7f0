package formats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// DueSeparator sits between the date and the time of a due label
const DueSeparator = " • "

// FormatDue renders a task's schedule as "Mon, Jan 1 • 3:00 PM".
// An empty date yields "". Values that do not parse are shown as stored.
func FormatDue(date, clock string) string {
	if date == "" {
		return ""
	}

	dateStr := date
	if d, err := time.Parse(types.DateLayout, date); err == nil {
		dateStr = d.Format("Mon, Jan 2")
	}
	if clock == "" {
		return dateStr
	}
	return dateStr + DueSeparator + formatClock(clock)
}

// FormatCreated renders a creation time as "Jan 2, 2006" in t's location.
// The zero time yields "".
func FormatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// formatClock turns a 24h "HH:MM[:SS]" into "3:04 PM"
func formatClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%s %s", displayHour, parts[1], ampm)
}

// checkbox returns the marker used by the text formats
func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
