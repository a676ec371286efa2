package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/town"
	"github.com/learnquest/learnquest/internal/ui/render"
)

var townCmd = &cobra.Command{
	Use:   "town",
	Short: "Show your buildings and what the next tier needs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.tracker.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Town(town.View(s.Stats), termWidth))
		return nil
	},
}
