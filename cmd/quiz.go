package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/ui/render"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a three-question English quiz (+30 XP per correct answer)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := aiContext(cmd)
		defer cancel()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Hint.Render("Préparation du quiz..."))
		session, err := a.tracker.StartQuiz(ctx)
		if err != nil {
			return err
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		answers := make([]string, 0, len(session.Questions))
		for i, q := range session.Questions {
			fmt.Fprintln(out)
			fmt.Fprintln(out, render.Question(i, q))
			fmt.Fprint(out, "\nVotre réponse: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break
			}
			answers = append(answers, pickOption(q, scanner.Text()))
		}

		res, err := a.tracker.SubmitQuiz(cmd.Context(), session.ID, answers)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Corrections(session.Quiz, answers))
		fmt.Fprintf(out, "\n── %d/%d correct ──\n", res.Correct, res.Total)
		if res.Applied {
			fmt.Fprintln(out, theme.Coins.Render(fmt.Sprintf("+%d XP, +%d gemmes", res.Correct*progress.QuizXPPerAnswer, res.Correct*progress.QuizCoinsPerAnswer)))
		}
		return nil
	},
}

// pickOption maps an option number or free text to the option text.
func pickOption(q content.Question, input string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt, input) {
			return opt
		}
	}
	return input
}
