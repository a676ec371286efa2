package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/ui/render"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

// aiTimeout bounds a CLI command waiting on the AI provider.
const aiTimeout = 2 * time.Minute

func aiContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), aiTimeout)
}

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Show the active daily quests",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := a.tracker.Board(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Quests(b))
		return nil
	},
}

var questsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Replace the active quests with three new AI-generated ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := aiContext(cmd)
		defer cancel()

		fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("Génération des quêtes..."))
		res, err := a.tracker.RegenerateQuests(ctx)
		if err != nil {
			return err
		}
		if !res.Applied {
			fmt.Fprintln(cmd.OutOrStdout(), "Quests changed while generating; nothing replaced.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Quests(res.Quests))
		return nil
	},
}

var questsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete an active quest and collect its reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		before, err := a.tracker.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		res, err := a.tracker.CompleteQuest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !res.Applied {
			fmt.Fprintf(out, "Quest %q is unknown or already completed.\n", args[0])
			return nil
		}
		s := res.State
		fmt.Fprintf(out, "%s +%d XP, %s\n",
			theme.Correct.Render("Quête accomplie !"),
			s.XP-before.XP,
			theme.Coins.Render(fmt.Sprintf("+%d gemmes", s.GemCoins-before.GemCoins)))
		if s.Level > before.Level {
			fmt.Fprintln(out, theme.Coins.Render(fmt.Sprintf("Niveau %d atteint ! +%d BP", s.Level, s.BuildPoints-before.BuildPoints)))
		}
		return nil
	},
}

func init() {
	questsCmd.AddCommand(questsGenerateCmd)
	questsCmd.AddCommand(questsCompleteCmd)
}
