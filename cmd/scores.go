package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/problemgen"
	sess "github.com/abhisek/mathdrill/internal/session"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores for every topic and mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.HighScores().All(context.Background())
		if err != nil {
			return fmt.Errorf("query high scores: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No high scores yet. Play a game first!")
			return nil
		}

		fmt.Fprintf(out, "%-14s  %-9s  %6s  %6s  %7s  %s\n",
			"Topic", "Mode", "Score", "Streak", "Correct", "Date")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, e := range entries {
			fmt.Fprintf(out, "%-14s  %-9s  %6d  %6d  %7d  %s\n",
				problemgen.Topic(e.Topic).DisplayName(),
				sess.Mode(e.Mode).DisplayName(),
				e.Score, e.Streak, e.CorrectCount,
				e.Date.Local().Format("2006-01-02"))
		}
		return nil
	},
}
