package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks/migration"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every stored task is well formed",
	Long:  "Report missing or duplicate ids, empty text and malformed dates or times.",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
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
	result := api.ValidateTasks(tasks, migration.Options{
		DryRun:  dryRun,
		Verbose: verbose,
	})

	return handleResult(cmd, result)
}
