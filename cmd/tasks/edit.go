package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *CLI) newEditCommand() *cobra.Command {
	var (
		date  string
		clock string
	)

	cmd := &cobra.Command{
		Use:   "edit <id> [text...]",
		Short: "Change the text or due date of a task",
		Long: `Edit a task in place. Fields without a flag or argument keep their value.
Pass an empty --date or --time to clear it.

Examples:
  tasks edit 0190a1b2 Buy oat milk
  tasks edit 0190a1b2 --date 2024-02-01 --time 09:30
  tasks edit 0190a1b2 --date ""`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			current, err := cli.resolveTask(board, "edit task", args[0])
			if err != nil {
				return err
			}

			text := current.Text
			if len(args) > 1 {
				text = strings.Join(args[1:], " ")
			}
			if !cmd.Flags().Changed("date") {
				date = current.Date
			}
			if !cmd.Flags().Changed("time") {
				clock = current.Time
			}

			task, err := board.Store().Update(current.ID, text, date, clock)
			if err != nil {
				return emptyTextError("edit task", "Task cannot be empty!", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✏️  Task updated successfully!")
			fmt.Fprintf(out, "   %s\n", describeTask(task, cli.shortID(board, task.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&clock, "time", "", "New due time (HH:MM, empty clears)")

	return cmd
}
