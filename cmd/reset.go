package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Wipes XP, coins, skills, unlocked nodes, history and the quest board. The event log is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "This erases all progress. Type \"reset\" to confirm: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "reset" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.tracker.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
