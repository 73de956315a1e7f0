package validation

import (
	"strings"
	"time"

	"github.com/arthur-debert/nanotasks/types"
)

// NormalizeText trims the text and rejects it when nothing is left.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &types.ValidationError{
			Field:  "text",
			Value:  text,
			Reason: "task text cannot be empty",
		}
	}
	return trimmed, nil
}

// IsBlank reports whether text would be rejected by NormalizeText
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ValidateDate accepts an empty string (no date) or a YYYY-MM-DD calendar date
func ValidateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", nil
	}
	if _, err := time.Parse(types.DateLayout, date); err != nil {
		return "", &types.ValidationError{
			Field:  "date",
			Value:  date,
			Reason: "use YYYY-MM-DD",
		}
	}
	return date, nil
}

// ValidateTime accepts an empty string (no time), HH:MM or HH:MM:SS
func ValidateTime(clock string) (string, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return "", nil
	}
	for _, layout := range []string{types.TimeLayout, types.TimeLayoutSeconds} {
		if _, err := time.Parse(layout, clock); err == nil {
			return clock, nil
		}
	}
	return "", &types.ValidationError{
		Field:  "time",
		Value:  clock,
		Reason: "use HH:MM (24h)",
	}
}

// TaskFields validates and normalizes the user-editable fields of a task.
// Text is checked first so an empty task is always reported as such.
func TaskFields(text, date, clock string) (string, string, string, error) {
	normalized, err := NormalizeText(text)
	if err != nil {
		return "", "", "", err
	}
	d, err := ValidateDate(date)
	if err != nil {
		return "", "", "", err
	}
	c, err := ValidateTime(clock)
	if err != nil {
		return "", "", "", err
	}
	return normalized, d, c, nil
}
