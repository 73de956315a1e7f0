package formats

import (
	"strings"

	"github.com/arthur-debert/nanotasks/types"
)

// Plaintext renders one task per line:
//
//	[x] Buy milk  (Mon, Jan 1 • 3:00 PM)  Created: Dec 31, 2023
//
// The title, when given, is underlined with '=' characters.
var Plaintext = &ListFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Render: func(title string, tasks []types.Task) ([]byte, error) {
		var b strings.Builder
		if title != "" {
			b.WriteString(title + "\n")
			b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")
		}
		for _, t := range tasks {
			b.WriteString(checkbox(t.Completed) + " " + strings.ReplaceAll(t.Text, "\n", " "))
			if due := FormatDue(t.Date, t.Time); due != "" {
				b.WriteString("  (" + due + ")")
			}
			if created := FormatCreated(t.CreatedAt); created != "" {
				b.WriteString("  Created: " + created)
			}
			b.WriteString("\n")
		}
		return []byte(b.String()), nil
	},
}

func init() {
	mustRegister(Plaintext)
}
