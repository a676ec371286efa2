package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/history"
	"github.com/learnquest/learnquest/internal/ui/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily activity for the last week, month or year",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _ := cmd.Flags().GetString("period")
		period, err := history.ParsePeriod(p)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.tracker.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		sum := history.Summarize(s.History, period, a.tracker.Now())
		fmt.Fprintln(cmd.OutOrStdout(), render.History(sum, termWidth))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("period", "p", "week", "Window: week, month or year")
}
