package formats

import (
	"strings"

	"github.com/arthur-debert/nanotasks/types"
)

// Markdown renders a GitHub-style checklist under an h1 title
var Markdown = &ListFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(title string, tasks []types.Task) ([]byte, error) {
		var b strings.Builder
		if title != "" {
			b.WriteString("# " + title + "\n\n")
		}
		for _, t := range tasks {
			b.WriteString("- " + checkbox(t.Completed) + " " + escapeMarkdown(t.Text))
			if due := FormatDue(t.Date, t.Time); due != "" {
				b.WriteString(" _(" + due + ")_")
			}
			if created := FormatCreated(t.CreatedAt); created != "" {
				b.WriteString(" · Created: " + created)
			}
			b.WriteString("\n")
		}
		return []byte(b.String()), nil
	},
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func init() {
	mustRegister(Markdown)
}
