package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/nanotasks/nanotasks"
	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/nanotasks/store"
)

// CLI wires the task board to a cobra command tree configured through viper
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	logger  *slog.Logger
	board   *nanotasks.Board
	closers []io.Closer

	// now is the wall clock used for new tasks and default dates
	now func() time.Time
}

// NewCLI creates the command tree
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	if configFile := os.Getenv("NANOTASKS_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("nanotasks")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.nanotasks")
		cli.viperInst.AddConfigPath("/etc/nanotasks")
	}

	cli.viperInst.SetDefault("backend", store.BackendFile)
	cli.viperInst.SetDefault("key", storage.DefaultKey)
	cli.viperInst.SetDefault("log-level", "warn")
	cli.viperInst.SetDefault("output", "table")

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("NANOTASKS")

	// --log-level -> NANOTASKS_LOG_LEVEL
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// readConfig loads the config file if one is found. A broken file is reported.
func (cli *CLI) readConfig() error {
	err := cli.viperInst.ReadInConfig()
	if err == nil {
		return nil
	}
	// An explicit NANOTASKS_CONFIG must exist
	if os.Getenv("NANOTASKS_CONFIG") == "" {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
	}
	return NewConfigError("read configuration", err.Error(), CommonSuggestions.CheckConfig)
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "tasks",
		Short: "A small to-do list manager",
		Long: `tasks keeps an ordered list of to-do items with optional due dates.

New tasks go on top. Tasks can be edited, marked completed and deleted, and
the list can be viewed as all, completed or pending tasks.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOTASKS_*), also read from ./.env
3. Configuration file (NANOTASKS_CONFIG, ./nanotasks.*, ~/.nanotasks/, /etc/nanotasks/)

Examples:
  tasks add "Buy milk" --date 2024-01-01 --time 15:00
  tasks list --filter pending
  tasks toggle 0190a1b2
  NANOTASKS_BACKEND=postgres NANOTASKS_DSN=postgres://localhost/tasks tasks list`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = cli.viperInst.BindPFlags(cmd.Flags())
			if err := cli.readConfig(); err != nil {
				return err
			}

			logger, closer, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cmd.ErrOrStderr(),
			)
			if err != nil {
				// Logging is best effort; the command still runs
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				return nil
			}
			cli.logger = logger
			cli.closers = append(cli.closers, closer)
			cli.logger.Debug("command started", "command", cmd.CommandPath(), "args", args)
			return nil
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("backend", "b", store.BackendFile,
		fmt.Sprintf("Storage backend (%s)", strings.Join(store.Backends(), "|")))
	flags.String("dir", "", "Directory for the file backend (default $XDG_DATA_HOME/nanotasks)")
	flags.String("key", storage.DefaultKey, "Storage key holding the task list")
	flags.String("dsn", "", "Connection string for the mysql and postgres backends")

	flags.StringP("output", "o", "table", "Output format (table|json|yaml)")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Mirror log output to stderr")
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newAddCommand(),
		cli.newEditCommand(),
		cli.newToggleCommand(),
		cli.newDeleteCommand(),
		cli.newListCommand(),
		cli.newStatsCommand(),
		cli.newExportCommand(),
		cli.newImportCommand(),
	)
}

// openBoard opens the configured slot and loads the task list. The board is
// opened once per process.
func (cli *CLI) openBoard(ctx context.Context) (*nanotasks.Board, error) {
	if cli.board != nil {
		return cli.board, nil
	}

	cfg := store.Config{
		Backend: cli.viperInst.GetString("backend"),
		Dir:     cli.viperInst.GetString("dir"),
		Key:     cli.viperInst.GetString("key"),
		DSN:     cli.viperInst.GetString("dsn"),
	}
	if cfg.Dir == "" {
		cfg.Dir = getXDGDataDir()
	}

	slot, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, NewConfigError("open tasks", err.Error(),
			CommonSuggestions.CheckConfig,
			fmt.Sprintf("Available backends: %s", strings.Join(store.Backends(), ", ")))
	}

	adapter := storage.NewAdapter(slot, storage.WithLogger(cli.logger))
	cli.closers = append(cli.closers, adapter)

	tasks := nanotasks.New(adapter,
		nanotasks.WithLogger(cli.logger),
		nanotasks.WithClock(cli.now),
	)
	cli.board = nanotasks.NewBoard(tasks)
	cli.logger.Debug("task list opened", "backend", cfg.Backend, "key", cfg.Key, "tasks", len(tasks.List()))
	return cli.board, nil
}

// Execute runs the command tree and releases the slot and log file
func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

func (cli *CLI) close() {
	// Slot first, log file last
	for i := len(cli.closers) - 1; i >= 0; i-- {
		if err := cli.closers[i].Close(); err != nil {
			cli.logger.Warn("close failed", "error", err)
		}
	}
	cli.closers = nil
	cli.board = nil
}
