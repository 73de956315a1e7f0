package formats

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/arthur-debert/nanotasks/types"
)

// PDF renders an A4 report: the title, then one row per task with its
// completion mark, text and due label.
var PDF = &ListFormat{
	Name:      "pdf",
	Extension: ".pdf",
	Render: func(title string, tasks []types.Task) ([]byte, error) {
		pdf := gofpdf.New("P", "mm", "A4", "")
		// Core fonts are cp1252; translate so "•" and accents survive
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.AddPage()

		if title == "" {
			title = "Tasks"
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, tr(title))
		pdf.Ln(12)

		pdf.SetFont("Arial", "", 10)
		if len(tasks) == 0 {
			pdf.Cell(40, 6, "No tasks found")
			pdf.Ln(6)
		}
		for _, t := range tasks {
			line := fmt.Sprintf("%s %s", checkbox(t.Completed), t.Text)
			if due := FormatDue(t.Date, t.Time); due != "" {
				line += "  (" + due + ")"
			}
			pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, fmt.Errorf("failed to render pdf: %w", err)
		}
		return buf.Bytes(), nil
	},
}

func init() {
	mustRegister(PDF)
}
