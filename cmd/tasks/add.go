package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/types"
)

func (cli *CLI) newAddCommand() *cobra.Command {
	var (
		date   string
		clock  string
		noDate bool
	)

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Long: `Add a new pending task. The date defaults to today unless --no-date is given.

Examples:
  tasks add Buy milk
  tasks add "Call mom" --date 2024-01-01 --time 15:00
  tasks add "Someday" --no-date`,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("date") && !noDate {
				date = cli.now().Format(types.DateLayout)
			}
			if noDate {
				date = ""
				if clock != "" {
					return NewValidationError("add task", "--time needs a date", nil, "Drop --no-date or --time")
				}
			}

			task, err := board.Store().Create(strings.Join(args, " "), date, clock)
			if err != nil {
				return emptyTextError("add task", "Please enter a task!", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✅ Task added successfully!")
			fmt.Fprintf(out, "   %s\n", describeTask(task, cli.shortID(board, task.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&clock, "time", "", "Due time (HH:MM)")
	cmd.Flags().BoolVar(&noDate, "no-date", false, "Create the task without a due date")

	return cmd
}
