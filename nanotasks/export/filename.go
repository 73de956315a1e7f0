package export

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/arthur-debert/nanotasks/formats"
)

var dashRun = regexp.MustCompile("-+")

// generateFilename creates <sanitized-title>-<YYYYMMDD-HHMMSS><ext>
func generateFilename(title string, format *formats.ListFormat, at time.Time) string {
	ext := format.Extension
	if ext == "" {
		ext = ".txt"
	}
	return sanitizeTitle(title) + "-" + at.Format("20060102-150405") + ext
}

// sanitizeTitle cleans a title according to export rules:
// lowercase, spaces to dashes, only letters, digits, dash and underscore,
// no repeated or edge dashes, at most 40 bytes.
func sanitizeTitle(title string) string {
	result := strings.ToLower(title)
	result = strings.ReplaceAll(result, " ", "-")

	var builder strings.Builder
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}

	result = dashRun.ReplaceAllString(builder.String(), "-")
	result = strings.Trim(result, "-")

	if len(result) > 40 {
		// Cut on a rune boundary
		cut := 0
		for i := range result {
			if i > 40 {
				break
			}
			cut = i
		}
		result = strings.TrimRight(result[:cut], "-")
	}

	if result == "" {
		result = "tasks"
	}
	return result
}
