package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// ErrNoProblem is returned when the generator cannot produce a problem
// for the session's topic and hints.
var ErrNoProblem = errors.New("no problem available")

// DefaultQuizSeconds is the countdown used when a quiz starts without one.
const DefaultQuizSeconds = 60

// Mode selects untimed practice or a timed quiz.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeQuiz     Mode = "quiz"
)

// AllModes returns the modes in menu order.
func AllModes() []Mode {
	return []Mode{ModePractice, ModeQuiz}
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModePractice:
		return "Practice"
	case ModeQuiz:
		return "Quiz"
	default:
		return string(m)
	}
}

// ParseMode converts "practice" or "quiz" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePractice:
		return ModePractice, nil
	case ModeQuiz:
		return ModeQuiz, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Phase is the lifecycle state of the engine's session.
type Phase int

const (
	PhaseIdle     Phase = iota // No session started
	PhaseActive                // Serving problems
	PhaseTerminal              // Ended, timed out, or problem cap reached
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Attempt is one answered problem in the session history.
type Attempt struct {
	Problem problemgen.Problem
	Given   float64
	Correct bool
}

// GameSession is the mutable aggregate for one practice or quiz run.
type GameSession struct {
	// ID is the UUID for this session.
	ID string

	Mode  Mode
	Topic problemgen.Topic

	// Request holds the generation hints in effect for this session.
	Request problemgen.Request

	Score        int
	Streak       int
	BestStreak   int
	CorrectCount int
	WrongCount   int

	// CurrentProblem is the problem awaiting an answer (nil if generation failed).
	CurrentProblem *problemgen.Problem

	// History lists every answered problem in order.
	History []Attempt

	// TimeRemaining is the quiz countdown in seconds; nil in practice mode.
	TimeRemaining *int

	// Active is false once the session is terminal.
	Active bool

	// QuizDuration is the starting countdown in seconds (quiz only).
	QuizDuration int

	// QuizProblemCount ends a quiz after that many answers; 0 means no cap.
	QuizProblemCount int

	StartedAt time.Time
	EndedAt   time.Time

	// seen holds problem IDs served this session.
	seen map[string]bool
}

// Answered returns the number of problems answered so far.
func (s *GameSession) Answered() int {
	return s.CorrectCount + s.WrongCount
}

// Accuracy returns the fraction of answers that were correct.
func (s *GameSession) Accuracy() float64 {
	if s.Answered() == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.Answered())
}

// Result is the outcome of CheckAnswer, used for feedback display.
type Result struct {
	Correct bool

	// Answer is the canonical numeric answer; AnswerText its rendering.
	Answer     float64
	AnswerText string

	// ScoreDelta is the points awarded by this answer.
	ScoreDelta int

	// Streak is the streak after this answer.
	Streak int

	// Milestone is non-zero when this answer reached a streak milestone.
	Milestone int

	// Ended is true if this answer made the session terminal.
	Ended bool
}

// Options configure StartGame.
type Options struct {
	Mode  Mode
	Topic problemgen.Topic

	// QuizSeconds is the quiz countdown; <= 0 uses DefaultQuizSeconds.
	QuizSeconds int

	// QuizProblems caps the number of quiz answers; 0 means no cap.
	QuizProblems int

	// Request carries the initial operator, range, tier, and grade hints.
	Request problemgen.Request
}
