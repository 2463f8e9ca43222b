package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/problemgen"
	sess "github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished games",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.Sessions().Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No games recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-14s  %-9s  %6s  %5s  %5s  %6s  %s\n",
			"Finished", "Topic", "Mode", "Score", "Right", "Wrong", "Streak", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, r := range records {
			fmt.Fprintf(out, "%-16s  %-14s  %-9s  %6d  %5d  %5d  %6d  %s\n",
				r.EndedAt.Local().Format("2006-01-02 15:04"),
				problemgen.Topic(r.Topic).DisplayName(),
				sess.Mode(r.Mode).DisplayName(),
				r.Score, r.Correct, r.Wrong, r.BestStreak,
				layout.FormatClock(int(r.Duration.Seconds())))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of games to show (0 for all)")
}
