package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent progress events (steps, quests, quizzes, unlocks...)",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryProgressEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No progress events found.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SEQ\tTIME\tKIND\tSUBJECT\tXP\tCOINS\tLEVEL")
		for _, e := range events {
			if kind != "" && e.Kind != kind {
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%+d\t%+d\t%d\n",
				e.Sequence, e.Timestamp.Local().Format(stamp), e.Kind,
				truncate(e.Subject, 24), e.XPDelta, e.CoinsDelta, e.LevelAfter)
		}
		return tw.Flush()
	},
}

func init() {
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().StringP("kind", "k", "", "Filter by kind (step, quest, quests, quiz, challenge, unlock, reset)")
}
