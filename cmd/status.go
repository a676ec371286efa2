package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/history"
	"github.com/learnquest/learnquest/internal/ui/render"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, coins, streak and skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func runStatus(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.tracker.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	streak := history.CurrentStreak(s.History, a.tracker.Now())
	fmt.Fprintln(cmd.OutOrStdout(), render.Status(s, streak, termWidth))
	return nil
}
