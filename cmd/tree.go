package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/skilltree"
	"github.com/learnquest/learnquest/internal/ui/render"
	"github.com/learnquest/learnquest/internal/ui/theme"
)

var treeCmd = &cobra.Command{
	Use:   "tree [domain]",
	Short: "Show the skill trees, optionally for one domain",
	Args:  cobra.MaximumNArgs(1),
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
		views := skilltree.Default().View(s)
		if len(args) == 1 {
			views = filterTrees(views, args[0])
			if len(views) == 0 {
				return fmt.Errorf("no skill tree for domain %q", args[0])
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Trees(views, s))
		return nil
	},
}

// filterTrees keeps the trees whose domain starts with prefix, ignoring case.
func filterTrees(views []skilltree.TreeView, prefix string) []skilltree.TreeView {
	var out []skilltree.TreeView
	for _, v := range views {
		if strings.HasPrefix(strings.ToLower(string(v.Domain)), strings.ToLower(prefix)) {
			out = append(out, v)
		}
	}
	return out
}

var treeUnlockCmd = &cobra.Command{
	Use:   "unlock <node-id>",
	Short: "Buy a skill node with build or skill points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := skilltree.GetNode(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.tracker.Unlock(cmd.Context(), n.ID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !res.Applied {
			fmt.Fprintf(out, "%s cannot be unlocked: already owned, parent locked or not enough %s.\n", n.ID, n.CostType)
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", theme.NodeUnlocked.Render("● Débloqué:"), n.Title)
		if n.Perk != "" {
			fmt.Fprintln(out, theme.Hint.Render(n.Perk))
		}
		return nil
	},
}

var treeAdviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Ask the AI which node to unlock next",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := aiContext(cmd)
		defer cancel()
		adv, err := a.tracker.Advice(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Advice(adv, skilltree.Default()))
		return nil
	},
}

var treeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search skill nodes by id or title",
	Args:  cobra.MinimumNArgs(1),
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
		c := skilltree.Default()
		nodes := c.Search(strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), render.Nodes(nodes, s, c))
		return nil
	},
}

func init() {
	treeCmd.AddCommand(treeUnlockCmd)
	treeCmd.AddCommand(treeAdviceCmd)
	treeCmd.AddCommand(treeSearchCmd)
}
