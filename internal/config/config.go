package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from the environment.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default XDG path.
	DBPath string `env:"MATHDRILL_DB"`

	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64 `env:"MATHDRILL_SEED" envDefault:"0"`

	// QuizSeconds is the starting countdown for quiz mode.
	QuizSeconds int `env:"MATHDRILL_QUIZ_SECONDS" envDefault:"60"`

	// QuizProblems caps the number of answers in a quiz (0 = no cap).
	QuizProblems int `env:"MATHDRILL_QUIZ_PROBLEMS" envDefault:"0"`

	// Range is the default numeric range for arithmetic problems.
	Range int `env:"MATHDRILL_RANGE" envDefault:"20"`

	// Grade is the default grade level for word problems.
	Grade int `env:"MATHDRILL_GRADE" envDefault:"2"`

	// FractionTier is the default fraction difficulty tier (1-5).
	FractionTier int `env:"MATHDRILL_FRACTION_TIER" envDefault:"1"`

	// HistoryKeep is how many finished sessions the store retains (0 = all).
	HistoryKeep int `env:"MATHDRILL_HISTORY_KEEP" envDefault:"500"`
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		QuizSeconds:  60,
		Range:        20,
		Grade:        2,
		FractionTier: 1,
		HistoryKeep:  500,
	}
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	if c.QuizSeconds <= 0 {
		return fmt.Errorf("MATHDRILL_QUIZ_SECONDS must be positive, got %d", c.QuizSeconds)
	}
	if c.QuizProblems < 0 {
		return fmt.Errorf("MATHDRILL_QUIZ_PROBLEMS must not be negative, got %d", c.QuizProblems)
	}
	if c.Range < 2 {
		return fmt.Errorf("MATHDRILL_RANGE must be at least 2, got %d", c.Range)
	}
	if c.Grade < 1 {
		return fmt.Errorf("MATHDRILL_GRADE must be at least 1, got %d", c.Grade)
	}
	if c.FractionTier < 1 || c.FractionTier > 5 {
		return fmt.Errorf("MATHDRILL_FRACTION_TIER must be 1-5, got %d", c.FractionTier)
	}
	if c.HistoryKeep < 0 {
		return fmt.Errorf("MATHDRILL_HISTORY_KEEP must not be negative, got %d", c.HistoryKeep)
	}
	return nil
}
