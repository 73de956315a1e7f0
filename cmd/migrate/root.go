package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks/migration"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/nanotasks/store"
	"github.com/arthur-debert/nanotasks/types"
)

var (
	source  store.Config
	dryRun  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "nanotasks-migrate",
	Short:         "Maintenance tools for stored task lists",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Check, repair and move task lists",
	Long: `Work on a stored task list directly, outside the tasks command.

Examples:
  nanotasks-migrate migrate validate --dir ~/.local/share/nanotasks
  nanotasks-migrate migrate repair --dir ~/.local/share/nanotasks --dry-run
  nanotasks-migrate migrate copy --dir ~/.local/share/nanotasks --to-backend postgres --to-dsn postgres://localhost/tasks`,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	flags := migrateCmd.PersistentFlags()
	flags.StringVarP(&source.Backend, "backend", "b", store.BackendFile, "backend holding the task list")
	flags.StringVarP(&source.Dir, "dir", "d", "", "directory of the file backend")
	flags.StringVarP(&source.Key, "key", "k", storage.DefaultKey, "storage key of the task list")
	flags.StringVar(&source.DSN, "dsn", "", "connection string for sql backends")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without applying them")
	flags.BoolVarP(&verbose, "verbose", "v", false, "show detailed output")

	migrateCmd.AddCommand(validateCmd)
	migrateCmd.AddCommand(repairCmd)
	migrateCmd.AddCommand(copyCmd)
}

// openSlot opens the slot described by cfg
func openSlot(ctx context.Context, cfg store.Config) (storage.Slot, error) {
	if (cfg.Backend == "" || cfg.Backend == store.BackendFile) && cfg.Dir == "" {
		return nil, fmt.Errorf("the file backend needs --dir")
	}
	return store.Open(ctx, cfg)
}

// loadTasks reads and decodes a slot without the adapter's fallback to an
// empty list, so broken data is reported instead of hidden
func loadTasks(ctx context.Context, slot storage.Slot) ([]types.Task, error) {
	raw, err := slot.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	if raw == nil {
		return []types.Task{}, nil
	}
	return storage.Decode(raw)
}

// exitError carries a migration result code out of Execute
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("migration failed with code %d", e.code)
}

// printMessage prints a message with appropriate formatting based on level
func printMessage(out, errOut io.Writer, msg migration.Message) {
	switch msg.Level {
	case migration.LevelError:
		fmt.Fprintf(errOut, "\033[31mERROR: %s\033[0m\n", msg.Text)
	case migration.LevelWarning:
		fmt.Fprintf(errOut, "\033[33mWARN: %s\033[0m\n", msg.Text)
	case migration.LevelInfo:
		fmt.Fprintf(out, "%s\n", msg.Text)
	case migration.LevelDebug:
		if verbose {
			fmt.Fprintf(out, "DEBUG: %s\n", msg.Text)
		}
	}

	// Print details if verbose and present
	if verbose && msg.Details != nil {
		for k, v := range msg.Details {
			fmt.Fprintf(out, "  %s: %v\n", k, v)
		}
	}
}

// handleResult prints the migration result and turns a failure into an error
func handleResult(cmd *cobra.Command, result *migration.Result) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, msg := range result.Messages {
		printMessage(out, errOut, msg)
	}

	fmt.Fprintln(out)
	if !result.Success {
		fmt.Fprintf(out, "Migration failed\n")
		return &exitError{code: result.Code}
	}

	fmt.Fprintf(out, "Migration completed successfully\n")
	if result.Stats.TotalTasks > 0 {
		fmt.Fprintf(out, "  Modified: %d/%d tasks\n", result.Stats.ModifiedTasks, result.Stats.TotalTasks)
		fmt.Fprintf(out, "  Duration: %v\n", result.Stats.Duration)
	}
	if dryRun {
		fmt.Fprintf(out, "  (DRY RUN - no changes applied)\n")
	}
	return nil
}
