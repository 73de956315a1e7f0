package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks/migration"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
)

var dropBlank bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Fix ids, text, dates and timestamps of stored tasks",
	Long: `Give missing and duplicate ids fresh ones, trim text, clear malformed dates
and times and fill missing creation times. Tasks with empty text are kept
unless --drop-blank is given.`,
	Args: cobra.NoArgs,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().BoolVar(&dropBlank, "drop-blank", false, "remove tasks whose text is empty")
}

func runRepair(cmd *cobra.Command, args []string) error {
	slot, err := openSlot(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to open task list: %w", err)
	}
	defer func() { _ = slot.Close() }()

	tasks, err := loadTasks(cmd.Context(), slot)
	if err != nil {
		return err
	}

	api := migration.NewAPI()
	repaired, result := api.RepairTasks(tasks, migration.Options{
		DryRun:    dryRun,
		Verbose:   verbose,
		DropBlank: dropBlank,
	})

	changed := result.Stats.ModifiedTasks > 0 || result.Stats.SkippedTasks > 0
	if result.Success && !dryRun && changed {
		data, err := storage.Encode(repaired)
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
		if err := slot.Write(cmd.Context(), data); err != nil {
			return fmt.Errorf("failed to save repaired tasks: %w", err)
		}
	}

	return handleResult(cmd, result)
}
