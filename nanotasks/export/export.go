// Package export writes a filtered task list to a file in one of the
// registered list formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/nanotasks/formats"
	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/types"
)

// DefaultFormat is used when ExportOptions.Format is empty
const DefaultFormat = "json"

// now is swapped in tests
var now = time.Now

// DefaultTitle names an export of the given filter
func DefaultTitle(f types.Filter) string {
	switch f {
	case types.FilterCompleted:
		return "Completed tasks"
	case types.FilterPending:
		return "Pending tasks"
	}
	return "Tasks"
}

func resolveOptions(options ExportOptions) (ExportOptions, *formats.ListFormat, error) {
	filter, err := types.ParseFilter(string(options.Filter))
	if err != nil {
		return options, nil, err
	}
	options.Filter = filter

	if options.Format == "" {
		options.Format = DefaultFormat
	}
	format, err := formats.Get(options.Format)
	if err != nil {
		return options, nil, err
	}
	options.Format = format.Name

	if strings.TrimSpace(options.Title) == "" {
		options.Title = DefaultTitle(filter)
	}
	return options, format, nil
}

// GenerateExportData renders the tasks selected by options without touching
// the file system
func GenerateExportData(store Lister, options ExportOptions) (*ExportData, error) {
	options, format, err := resolveOptions(options)
	if err != nil {
		return nil, err
	}

	tasks := nanotasks.Project(store.List(), options.Filter)
	content, err := format.Render(options.Title, tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", format.Name, err)
	}

	created := now()
	return &ExportData{
		Filename:  generateFilename(options.Title, format, created),
		Format:    format.Name,
		Filter:    options.Filter,
		TaskCount: len(tasks),
		Created:   created,
		Content:   content,
	}, nil
}

// Export renders the selected tasks and writes them to disk.
// It returns the path of the written file.
//
// Example usage:
//
//	// Pending tasks as markdown in the current directory
//	path, err := Export(store, ExportOptions{
//	    Filter: types.FilterPending,
//	    Format: "markdown",
//	    Dir:    ".",
//	})
func Export(store Lister, options ExportOptions) (string, error) {
	data, err := GenerateExportData(store, options)
	if err != nil {
		return "", fmt.Errorf("failed to generate export data: %w", err)
	}

	path := options.OutputPath
	if path == "" {
		dir := options.Dir
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
		path = filepath.Join(dir, data.Filename)
	}

	if err := os.WriteFile(path, data.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

// GetExportMetadata returns what would be exported without rendering or
// writing anything
func GetExportMetadata(store Lister, options ExportOptions) (*ExportMetadata, error) {
	options, format, err := resolveOptions(options)
	if err != nil {
		return nil, err
	}

	tasks := nanotasks.Project(store.List(), options.Filter)
	meta := &ExportMetadata{
		Filename:  generateFilename(options.Title, format, now()),
		Format:    format.Name,
		Filter:    options.Filter,
		TaskCount: len(tasks),
		Tasks:     make([]TaskInfo, 0, len(tasks)),
	}
	for _, t := range tasks {
		meta.Tasks = append(meta.Tasks, TaskInfo{ID: t.ID, Text: t.Text, Completed: t.Completed})
	}
	return meta, nil
}
