package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotasks/nanotasks/export"
	"github.com/arthur-debert/nanotasks/search"
	"github.com/arthur-debert/nanotasks/types"
)

func (cli *CLI) newListCommand() *cobra.Command {
	var (
		filter        types.Filter
		query         string
		caseSensitive bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tasks, newest first",
		Long: `List tasks under a filter: all (default), completed or pending.

Examples:
  tasks list
  tasks list --filter pending
  tasks list --search milk
  tasks list --output json > backup.json`,
		Args: exactArgs(0, "tasks list [--filter all|completed|pending]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			f, err := cli.resolveFilter()
			if err != nil {
				return WrapError("list tasks", err)
			}
			if err := board.SetFilter(f); err != nil {
				return WrapError("list tasks", err)
			}

			visible := board.Visible()
			var highlights map[string]string
			if query = strings.TrimSpace(query); query != "" {
				results, err := search.SearchStore(board.Store(), search.SearchOptions{
					Query:           query,
					CaseSensitive:   caseSensitive,
					EnableHighlight: true,
				}, board.Filter())
				if err != nil {
					return WrapError("search tasks", err)
				}
				visible = make([]types.Task, 0, len(results))
				highlights = make(map[string]string, len(results))
				for _, r := range results {
					visible = append(visible, r.Task)
					if h, ok := r.Highlights[search.FieldText]; ok {
						highlights[r.Task.ID] = h
					}
				}
			}

			out := cmd.OutOrStdout()
			output := strings.ToLower(cli.viperInst.GetString("output"))
			if output != "" && output != "table" {
				return writeStructured(out, output, export.DefaultTitle(board.Filter()), visible)
			}

			counts := board.Counts()
			fmt.Fprintf(out, "📋 %s (%d)\n\n", export.DefaultTitle(board.Filter()), len(visible))
			if len(visible) == 0 {
				if query != "" {
					fmt.Fprintf(out, "No tasks match %q\n", query)
				} else {
					writeEmptyState(out, board.Filter())
				}
				writeCountsFooter(out, counts)
				return nil
			}

			if err := writeTaskTable(out, visible, shortIDs(board.Store().List()), highlights); err != nil {
				return err
			}
			writeCountsFooter(out, counts)
			return nil
		},
	}

	addFilterFlag(cmd.Flags(), &filter)
	cmd.Flags().StringVarP(&query, "search", "s", "", "Only show tasks matching this text")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match --search case-sensitively")

	return cmd
}
