package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks/migration"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/nanotasks/store"
)

var (
	target store.Config
	force  bool
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the task list to another backend or key",
	Long:  "Copy the task list as stored. A target that already holds tasks is only replaced with --force.",
	Args:  cobra.NoArgs,
	RunE:  runCopy,
}

func init() {
	flags := copyCmd.Flags()
	flags.StringVar(&target.Backend, "to-backend", store.BackendFile, "backend to copy into")
	flags.StringVar(&target.Dir, "to-dir", "", "directory of the target file backend")
	flags.StringVar(&target.Key, "to-key", storage.DefaultKey, "storage key in the target")
	flags.StringVar(&target.DSN, "to-dsn", "", "connection string of the target sql backend")
	flags.BoolVarP(&force, "force", "f", false, "replace tasks already in the target")
}

func runCopy(cmd *cobra.Command, args []string) error {
	if target == source {
		return fmt.Errorf("source and target are the same task list")
	}

	src, err := openSlot(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := openSlot(cmd.Context(), target)
	if err != nil {
		return fmt.Errorf("failed to open target: %w", err)
	}
	defer func() { _ = dst.Close() }()

	api := migration.NewAPI()
	result := api.CopyTasks(cmd.Context(), src, dst, migration.Options{
		DryRun:  dryRun,
		Verbose: verbose,
		Force:   force,
	})

	return handleResult(cmd, result)
}
