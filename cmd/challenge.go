package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/ui/render"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Write a prompt for an AI-generated scenario and get it scored",
	Long: `Generates a prompt-engineering scenario, reads your prompt and has it scored
from 0 to 100. Each point is worth 2 XP.

The prompt is read from --prompt, or from stdin until an empty line or EOF.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := aiContext(cmd)
		defer cancel()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Hint.Render("Préparation du défi..."))
		session, err := a.tracker.StartChallenge(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, render.Scenario(session.Scenario, termWidth))

		prompt, _ := cmd.Flags().GetString("prompt")
		if prompt == "" {
			fmt.Fprintln(out, "\nVotre prompt (ligne vide pour terminer):")
			prompt = readBlock(bufio.NewScanner(cmd.InOrStdin()))
		}

		evalCtx, evalCancel := aiContext(cmd)
		defer evalCancel()
		fmt.Fprintln(out, theme.Hint.Render("Évaluation..."))
		res, err := a.tracker.SubmitChallenge(evalCtx, session.ID, prompt)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, render.Evaluation(res.Evaluation, termWidth))
		if res.Applied {
			fmt.Fprintln(out, theme.Coins.Render(fmt.Sprintf("+%d XP", res.Evaluation.Score*progress.ChallengeXPPerPoint)))
		}
		return nil
	},
}

// readBlock reads lines until an empty line or EOF.
func readBlock(scanner *bufio.Scanner) string {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func init() {
	challengeCmd.Flags().StringP("prompt", "p", "", "Prompt to submit instead of reading stdin")
}
