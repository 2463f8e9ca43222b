package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// SessionSummary holds the data displayed on the summary screen and
// persisted when a session ends.
type SessionSummary struct {
	ID           string
	Mode         Mode
	Topic        problemgen.Topic
	Score        int
	BestStreak   int
	CorrectCount int
	WrongCount   int
	Answered     int
	Accuracy     float64
	Duration     time.Duration
	EndedAt      time.Time

	// Missed lists the problems answered incorrectly, in order.
	Missed []Attempt
}

// BuildSummary creates a SessionSummary from a session snapshot.
func BuildSummary(s *GameSession) *SessionSummary {
	if s == nil {
		return &SessionSummary{}
	}

	var missed []Attempt
	for _, a := range s.History {
		if !a.Correct {
			missed = append(missed, a)
		}
	}

	var duration time.Duration
	if !s.EndedAt.IsZero() {
		duration = s.EndedAt.Sub(s.StartedAt)
	}

	return &SessionSummary{
		ID:           s.ID,
		Mode:         s.Mode,
		Topic:        s.Topic,
		Score:        s.Score,
		BestStreak:   s.BestStreak,
		CorrectCount: s.CorrectCount,
		WrongCount:   s.WrongCount,
		Answered:     s.Answered(),
		Accuracy:     s.Accuracy(),
		Duration:     duration,
		EndedAt:      s.EndedAt,
		Missed:       missed,
	}
}
