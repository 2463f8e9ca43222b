package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/problemgen"
	sess "github.com/abhisek/mathdrill/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game straight away",
	Example: `  mathdrill play --topic arithmetic --mode quiz --op + --range 20 --duration 60
  mathdrill play --topic word --grade 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := gameOptions(cmd, cfg)
		if err != nil {
			return err
		}
		return runApp(cmd, &opts)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	addProblemFlags(c)
	c.Flags().String("mode", "practice", "Game mode: practice or quiz")
	c.Flags().Int("duration", 0, "Quiz countdown in seconds (default MATHDRILL_QUIZ_SECONDS)")
	c.Flags().Int("problems", 0, "End the quiz after this many answers (default MATHDRILL_QUIZ_PROBLEMS)")
}

// addProblemFlags registers the flags that shape generated problems.
func addProblemFlags(c *cobra.Command) {
	c.Flags().String("topic", "arithmetic", "Topic: arithmetic, fraction, percent or word")
	c.Flags().String("op", "mixed", "Operator: +, -, ×, ÷ (or add, sub, mul, div) or mixed")
	c.Flags().Int("range", 0, "Upper bound for arithmetic operands (default MATHDRILL_RANGE)")
	c.Flags().Int("tier", 0, "Fraction tier 1-5 (default MATHDRILL_FRACTION_TIER)")
	c.Flags().Int("grade", 0, "Grade level for word problems (default MATHDRILL_GRADE)")
}

// problemFlags reads the topic and request flags, falling back to cfg.
func problemFlags(cmd *cobra.Command, cfg config.Config) (problemgen.Topic, problemgen.Request, error) {
	topicVal, _ := cmd.Flags().GetString("topic")
	topic, err := problemgen.ParseTopic(topicVal)
	if err != nil {
		return "", problemgen.Request{}, err
	}

	opVal, _ := cmd.Flags().GetString("op")
	op, err := problemgen.ParseOperator(opVal)
	if err != nil {
		return "", problemgen.Request{}, err
	}

	req := app.DefaultOptions(cfg).Request
	req.Operator = op

	if rng, _ := cmd.Flags().GetInt("range"); rng != 0 {
		if rng < 2 {
			return "", problemgen.Request{}, fmt.Errorf("--range must be at least 2, got %d", rng)
		}
		req.Range = rng
	}
	if tier, _ := cmd.Flags().GetInt("tier"); tier != 0 {
		if !problemgen.Tier(tier).Valid() {
			return "", problemgen.Request{}, fmt.Errorf("--tier must be 1-5, got %d", tier)
		}
		req.Tier = problemgen.Tier(tier)
	}
	if grade, _ := cmd.Flags().GetInt("grade"); grade != 0 {
		if grade < 1 {
			return "", problemgen.Request{}, fmt.Errorf("--grade must be at least 1, got %d", grade)
		}
		req.Grade = grade
	}
	return topic, req, nil
}

// gameOptions builds the options for `play` from flags and configuration.
func gameOptions(cmd *cobra.Command, cfg config.Config) (sess.Options, error) {
	topic, req, err := problemFlags(cmd, cfg)
	if err != nil {
		return sess.Options{}, err
	}

	modeVal, _ := cmd.Flags().GetString("mode")
	mode, err := sess.ParseMode(modeVal)
	if err != nil {
		return sess.Options{}, err
	}

	opts := app.DefaultOptions(cfg)
	opts.Topic = topic
	opts.Mode = mode
	opts.Request = req

	if d, _ := cmd.Flags().GetInt("duration"); d != 0 {
		if d < 0 {
			return sess.Options{}, fmt.Errorf("--duration must be positive, got %d", d)
		}
		opts.QuizSeconds = d
	}
	if n, _ := cmd.Flags().GetInt("problems"); n != 0 {
		if n < 0 {
			return sess.Options{}, fmt.Errorf("--problems must not be negative, got %d", n)
		}
		opts.QuizProblems = n
	}
	return opts, nil
}
