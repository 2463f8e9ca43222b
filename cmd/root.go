package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Math practice drills in the terminal",
	Long:  "Math Drill: timed and untimed arithmetic, fraction, percentage and word-problem practice with high scores.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for reproducible problems (overrides MATHDRILL_SEED)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(worksheetCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, nil
}

// openStore resolves the database path from --db, then MATHDRILL_DB, then
// the default XDG path, and opens it.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := store.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	st.KeepSessions(cfg.HistoryKeep)
	return st, nil
}
