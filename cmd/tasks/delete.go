package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *CLI) newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long: `Delete a task after confirmation. Use --yes to skip the prompt.

Examples:
  tasks delete 0190a1b2
  tasks rm 0190a1b2 --yes`,
		Args: exactArgs(1, "tasks delete <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			task, err := cli.resolveTask(board, "delete task", args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "%s\n", describeTask(task, ""))
				if !confirm(cmd.InOrStdin(), out, "Are you sure you want to delete this task?") {
					fmt.Fprintln(out, "Nothing deleted.")
					return nil
				}
			}

			if err := board.Store().Delete(task.ID); err != nil {
				return WrapError("delete task", err)
			}
			fmt.Fprintln(out, "🗑️  Task deleted!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
