package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotasks/types"
)

// taskStats is the machine-readable form of the stats command
type taskStats struct {
	types.Counts `yaml:",inline"`
	Overdue      int `json:"overdue" yaml:"overdue"`
	DueToday     int `json:"due_today" yaml:"due_today"`
}

func (cli *CLI) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many tasks are completed and pending",
		Long: `Show task counts for every filter plus pending tasks that are due.

Examples:
  tasks stats
  tasks stats --output json`,
		Args: exactArgs(0, "tasks stats"),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := cli.openBoard(cmd.Context())
			if err != nil {
				return err
			}

			stats := taskStats{Counts: board.Counts()}
			today := cli.now().Format(types.DateLayout)
			for _, t := range board.Store().List() {
				if t.Completed || !t.HasDue() {
					continue
				}
				switch {
				case t.Date < today:
					stats.Overdue++
				case t.Date == today:
					stats.DueToday++
				}
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(cli.viperInst.GetString("output")) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			case "yaml":
				return yaml.NewEncoder(out).Encode(stats)
			}

			fmt.Fprintln(out, "📊 Task Statistics:")
			for _, f := range types.Filters() {
				fmt.Fprintf(out, "  %-10s %d\n", filterLabel(f)+":", stats.For(f))
			}
			if stats.All > 0 {
				fmt.Fprintf(out, "  %-10s %.0f%%\n", "Done:", float64(stats.Completed)*100/float64(stats.All))
			}
			if stats.Overdue > 0 || stats.DueToday > 0 {
				fmt.Fprintf(out, "\n  ⏰ %d due today, %d overdue\n", stats.DueToday, stats.Overdue)
			}
			return nil
		},
	}
}
