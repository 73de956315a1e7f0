package formats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

func sampleTasks() []types.Task {
	return []types.Task{
		{ID: "b", Text: "Call *mom*", Date: "2024-01-01", Time: "15:00", CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "a", Text: "Buy milk", Completed: true, CreatedAt: time.Date(2023, 12, 31, 9, 30, 0, 0, time.UTC)},
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"json", "markdown", "pdf", "plaintext", "yaml"}
	if diff := cmp.Diff(want, List()); diff != "" {
		t.Errorf("Unexpected formats (-want +got):\n%s", diff)
	}

	f, err := Get("Markdown")
	if err != nil || f != Markdown {
		t.Errorf("Get should be case-insensitive: %v", err)
	}
	if _, err := Get("docx"); err == nil || !strings.Contains(err.Error(), "available") {
		t.Errorf("Expected unknown format error listing formats, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	render := func(string, []types.Task) ([]byte, error) { return nil, nil }
	tests := []struct {
		name   string
		format *ListFormat
	}{
		{"uppercase name", &ListFormat{Name: "CSV", Extension: ".csv", Render: render}},
		{"empty name", &ListFormat{Name: "", Extension: ".csv", Render: render}},
		{"spaces", &ListFormat{Name: "my format", Extension: ".x", Render: render}},
		{"no renderer", &ListFormat{Name: "csv", Extension: ".csv"}},
		{"duplicate", &ListFormat{Name: "json", Extension: ".json", Render: render}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Register(tt.format); err == nil {
				t.Error("Expected registration to fail")
			}
		})
	}

	custom := &ListFormat{Name: "csv-test", Extension: "csv", Render: render}
	if err := Register(custom); err != nil {
		t.Fatalf("Expected registration to succeed: %v", err)
	}
	defer delete(registry, "csv-test")
	if custom.Extension != ".csv" {
		t.Errorf("Extension should be normalized, got %q", custom.Extension)
	}
}

func TestFormatDue(t *testing.T) {
	tests := []struct {
		date, clock, want string
	}{
		{"", "", ""},
		{"", "10:00", ""},
		{"2024-01-01", "", "Mon, Jan 1"},
		{"2024-01-01", "15:00", "Mon, Jan 1 • 3:00 PM"},
		{"2024-03-09", "00:05", "Sat, Mar 9 • 12:05 AM"},
		{"2024-03-09", "12:30:15", "Sat, Mar 9 • 12:30 PM"},
		{"someday", "noon", "someday • noon"},
	}
	for _, tt := range tests {
		if got := FormatDue(tt.date, tt.clock); got != tt.want {
			t.Errorf("FormatDue(%q, %q) = %q, want %q", tt.date, tt.clock, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown.Render("All tasks", sampleTasks())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "# All tasks\n\n" +
		"- [ ] Call \\*mom\\* _(Mon, Jan 1 • 3:00 PM)_ · Created: Jan 1, 2024\n" +
		"- [x] Buy milk · Created: Dec 31, 2023\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("Unexpected markdown (-want +got):\n%s", diff)
	}
}

func TestFormatCreated(t *testing.T) {
	if got := FormatCreated(time.Time{}); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
	if got := FormatCreated(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)); got != "Mar 9, 2024" {
		t.Errorf("unexpected created label %q", got)
	}

	out, _ := Plaintext.Render("", []types.Task{{ID: "n", Text: "No timestamp"}})
	if string(out) != "[ ] No timestamp\n" {
		t.Errorf("missing creation time should be omitted, got %q", out)
	}
}

func TestPlaintext(t *testing.T) {
	out, err := Plaintext.Render("Todo", sampleTasks())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "Todo\n====\n\n" +
		"[ ] Call *mom*  (Mon, Jan 1 • 3:00 PM)  Created: Jan 1, 2024\n" +
		"[x] Buy milk  Created: Dec 31, 2023\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("Unexpected text (-want +got):\n%s", diff)
	}

	empty, _ := Plaintext.Render("", nil)
	if len(empty) != 0 {
		t.Errorf("Expected empty output, got %q", empty)
	}
}

func TestJSONIsImportable(t *testing.T) {
	out, err := JSON.Render("ignored", sampleTasks())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.Contains(out, []byte("\n  {")) {
		t.Errorf("Expected indented output, got %s", out)
	}
	back, err := storage.Decode(out)
	if err != nil {
		t.Fatalf("output should decode: %v", err)
	}
	if diff := cmp.Diff(sampleTasks(), back); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML.Render("Pending", sampleTasks())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output should be valid YAML: %v", err)
	}
	if doc.Title != "Pending" || len(doc.Tasks) != 2 {
		t.Fatalf("Unexpected document: %+v", doc)
	}
	if doc.Tasks[0].CreatedAt != "2024-01-01T10:00:00.000Z" || doc.Tasks[1].Date != "" {
		t.Errorf("Unexpected tasks: %+v", doc.Tasks)
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF.Render("Tasks", sampleTasks())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("Expected a PDF header, got %q", out[:min(len(out), 8)])
	}

	empty, err := PDF.Render("", nil)
	if err != nil || !bytes.HasPrefix(empty, []byte("%PDF-")) {
		t.Errorf("Empty list should still render: %v", err)
	}
}
