package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/llm"
	"github.com/learnquest/learnquest/internal/store"
)

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Audit generative-AI calls: prompts, replies, tokens and cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		return writeLLMEvents(cmd.OutOrStdout(), filterPurpose(events, purpose))
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one AI call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event id %q is not a number", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event %d: %w", id, err)
		}
		if e == nil {
			return fmt.Errorf("llm event %d not found", id)
		}
		writeLLMEvent(cmd.OutOrStdout(), *e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		byPurpose, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		return writeLLMUsage(cmd.OutOrStdout(), byPurpose, byModel)
	},
}

func filterPurpose(events []store.LLMEventRecord, purpose string) []store.LLMEventRecord {
	if purpose == "" {
		return events
	}
	out := events[:0:0]
	for _, e := range events {
		if e.Purpose == purpose {
			out = append(out, e)
		}
	}
	return out
}

func writeLLMEvents(w io.Writer, events []store.LLMEventRecord) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No AI calls recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.Timestamp.Local().Format(stamp), e.Purpose, truncate(e.Model, 28),
			e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
	return tw.Flush()
}

func writeLLMEvent(w io.Writer, e store.LLMEventRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	fmt.Fprintf(tw, "Time:\t%s\n", e.Timestamp.Local().Format(stamp))
	fmt.Fprintf(tw, "Call:\t%s via %s/%s\n", e.Purpose, e.Provider, e.Model)
	fmt.Fprintf(tw, "Tokens:\t%d in, %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(tw, "Latency:\t%dms\n", e.LatencyMs)
	if e.Success {
		fmt.Fprintln(tw, "Result:\tok")
	} else {
		fmt.Fprintf(tw, "Result:\tfailed: %s\n", e.ErrorMessage)
	}
	tw.Flush()

	for _, part := range []struct{ title, body string }{
		{"Prompt", e.RequestBody},
		{"Reply", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n── %s %s\n%s\n", part.title, strings.Repeat("─", 56-len(part.title)), body)
	}
}

// modelCost is one priced row of the cost table. Known is false when the
// model is missing from the price list.
type modelCost struct {
	store.ModelUsage
	USD   float64
	Known bool
}

func priceModels(usage []store.ModelUsage) (rows []modelCost, total float64, partial bool) {
	for _, mu := range usage {
		row := modelCost{ModelUsage: mu}
		if c := llm.LookupCost(mu.Model); c != nil {
			row.USD, row.Known = c.Cost(mu.InputTokens, mu.OutputTokens), true
			total += row.USD
		} else {
			partial = true
		}
		rows = append(rows, row)
	}
	return rows, total, partial
}

func writeLLMUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) error {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No AI usage recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS\t")
	var calls, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls, in, out = calls+u.Calls, in+u.InputTokens, out+u.OutputTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\t\n", calls, in, out)
	if err := tw.Flush(); err != nil {
		return err
	}

	rows, total, partial := priceModels(byModel)
	if len(rows) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tUSD\t")
	var unpriced []string
	for _, r := range rows {
		usd := "?"
		if r.Known {
			usd = formatCost(r.USD)
		} else {
			unpriced = append(unpriced, r.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", truncate(r.Model, 32), r.Calls, r.InputTokens, r.OutputTokens, usd)
	}
	label := "total"
	if partial {
		label = "total (partial)"
	}
	fmt.Fprintf(tw, "%s\t\t\t\t%s\t\n", label, formatCost(total))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo price list entry for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only this purpose (daily-quests, english-quiz, ai-challenge, prompt-evaluation, skill-advice)")
	llmListCmd.Flags().Duration("since", 0, "Only calls newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
