package cmd

import (
	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learnquest",
	Short: "Gamified learning tracker",
	Long: "LearnQuest turns a self-directed curriculum into a game: XP and levels, daily streaks,\n" +
		"skill trees, a town of buildings, and AI-generated quests, quizzes and prompt challenges.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LEARNQUEST_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNQUEST_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(townCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then LEARNQUEST_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
