package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/formats"
	"github.com/arthur-debert/nanotasks/nanotasks/export"
	"github.com/arthur-debert/nanotasks/types"
)

func (cli *CLI) newExportCommand() *cobra.Command {
	var (
		filter  types.Filter
		format  string
		title   string
		path    string
		outDir  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list to a file",
		Long: fmt.Sprintf(`Export tasks to a document. The json format can be read back with import.

Formats: %s

Examples:
  tasks export --format markdown --filter pending
  tasks export --format pdf --path ~/tasks.pdf
  tasks export --preview`, strings.Join(formats.List(), ", ")),
		Args: exactArgs(0, "tasks export [--format name] [--path file]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			f, err := cli.resolveFilter()
			if err != nil {
				return WrapError("export tasks", err)
			}
			if err := board.SetFilter(f); err != nil {
				return WrapError("export tasks", err)
			}
			options := export.ExportOptions{
				Filter:     f,
				Format:     cli.viperInst.GetString("format"),
				Title:      title,
				OutputPath: path,
				Dir:        outDir,
			}

			out := cmd.OutOrStdout()
			if preview {
				meta, err := export.GetExportMetadata(board.Store(), options)
				if err != nil {
					return exportError(err)
				}
				if strings.ToLower(cli.viperInst.GetString("output")) == "json" {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(meta)
				}
				fmt.Fprintf(out, "Would export %d %s task(s) as %s to %s\n",
					meta.TaskCount, meta.Filter, meta.Format, meta.Filename)
				for _, t := range meta.Tasks {
					fmt.Fprintf(out, "  %s %s\n", checkbox(types.Task{Completed: t.Completed}), t.Text)
				}
				return nil
			}

			written, err := export.Export(board.Store(), options)
			if err != nil {
				return exportError(err)
			}
			fmt.Fprintf(out, "📦 Exported %d task(s) to %s\n", len(board.Visible()), written)
			return nil
		},
	}

	addFilterFlag(cmd.Flags(), &filter)
	cmd.Flags().StringVarP(&format, "format", "f", export.DefaultFormat, "Document format")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default from the filter)")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Write to this file")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for a generated file name (default temp dir)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show what would be exported without writing")

	return cmd
}

func exportError(err error) error {
	return WrapError("export tasks", err, fmt.Sprintf("Available formats: %s", strings.Join(formats.List(), ", ")))
}
