package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	imports "github.com/arthur-debert/nanotasks/nanotasks/import"
	"github.com/arthur-debert/nanotasks/types"
)

func (cli *CLI) newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add tasks from a JSON export",
		Long: `Import tasks from a JSON array in the stored task layout, such as a
"tasks export" file or a browser localStorage dump. Tasks already present are
skipped, so importing the same file twice changes nothing. Records carrying
an id match on it; records without one match on text, due date and time.

Examples:
  tasks import backup.json
  tasks import backup.json --dry-run`,
		Args: exactArgs(1, "tasks import <file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := imports.ReadFile(args[0])
			if err != nil {
				return NewValidationError("import tasks", err.Error(), err, "The file must hold a JSON array of tasks")
			}

			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			result, err := imports.Process(board.Store(), records, imports.ImportOptions{DryRun: dryRun})
			if result != nil {
				if werr := cli.writeImportResult(cmd, result); werr != nil {
					return werr
				}
			}
			if err != nil {
				if errors.Is(err, types.ErrPersistence) {
					return WrapError("import tasks", err, "Tasks listed above as imported were saved")
				}
				return WrapError("import tasks", err, CommonSuggestions.TryDryRun)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without adding anything")
	return cmd
}

func (cli *CLI) writeImportResult(cmd *cobra.Command, result *imports.ImportResult) error {
	out := cmd.OutOrStdout()
	if strings.ToLower(cli.viperInst.GetString("output")) == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	s := result.Summary
	verb := "Imported"
	if s.DryRun {
		verb = "Would import"
	}
	fmt.Fprintf(out, "📥 %s %d of %d task(s)", verb, s.SuccessfulImports, s.TotalTasks)
	if s.SkippedTasks > 0 {
		fmt.Fprintf(out, ", %d already present", s.SkippedTasks)
	}
	if s.FailedImports > 0 {
		fmt.Fprintf(out, ", %d invalid", s.FailedImports)
	}
	fmt.Fprintln(out)

	for _, f := range result.Failed {
		fmt.Fprintf(out, "  ✗ record %d: %s\n", f.Index+1, f.Error)
	}
	return nil
}
