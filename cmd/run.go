package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	sess "github.com/abhisek/mathdrill/internal/session"
)

// runApp opens the store and launches the TUI. start, when set, skips the
// menu and opens that game directly. A store that cannot be opened only
// disables high scores and history.
func runApp(cmd *cobra.Command, start *sess.Options) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{Config: cfg, Start: start}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		fmt.Fprintln(os.Stderr, "warning: high scores and history will not be saved.")
	} else {
		defer st.Close()
		opts.Store = st
	}

	return app.Run(opts)
}
