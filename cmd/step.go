package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Validate one curriculum step (+10 XP, +1 coin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		before, err := a.tracker.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		s := before
		for range count {
			res, err := a.tracker.IncrementStep(cmd.Context())
			if err != nil {
				return err
			}
			s = res.State
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d / %d steps  (+%d XP)\n",
			theme.Correct.Render("✓"), s.StepsCompleted, progress.TotalSteps, s.XP-before.XP)
		if s.Level > before.Level {
			fmt.Fprintln(out, theme.Coins.Render(fmt.Sprintf("Niveau %d atteint ! +%d BP", s.Level, s.BuildPoints-before.BuildPoints)))
		}
		return nil
	},
}

func init() {
	stepCmd.Flags().IntP("count", "n", 1, "Number of steps to validate")
}
