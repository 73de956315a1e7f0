package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *CLI) newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done", "complete"},
		Short:   "Mark a task completed, or pending again",
		Long: `Flip the completion state of a task.

Examples:
  tasks toggle 0190a1b2
  tasks done 0190a1b2`,
		Args: exactArgs(1, "tasks toggle <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			current, err := cli.resolveTask(board, "toggle task", args[0])
			if err != nil {
				return err
			}
			task, err := board.Store().ToggleCompleted(current.ID)
			if err != nil {
				return WrapError("toggle task", err)
			}

			if task.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %s\n", task.Text)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "↺ Pending again: %s\n", task.Text)
			}
			return nil
		},
	}
}
