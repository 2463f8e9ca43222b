package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// maxDedupAttempts bounds how many candidates NextProblem draws before
// accepting a repeat.
const maxDedupAttempts = 20

// pointsPerCorrect is the base score for a correct answer; the current
// streak is added on top.
const pointsPerCorrect = 10

// ProblemSource generates single problems. *problemgen.Generator
// satisfies it.
type ProblemSource interface {
	Generate(topic problemgen.Topic, req problemgen.Request) (*problemgen.Problem, bool)
}

// Engine runs one game session at a time. It is not safe for concurrent
// use; callers serialize Tick, CheckAnswer, and NextProblem.
type Engine struct {
	gen     ProblemSource
	session *GameSession
	now     func() time.Time
}

// NewEngine creates an idle Engine drawing problems from gen.
func NewEngine(gen ProblemSource) *Engine {
	return &Engine{gen: gen, now: time.Now}
}

// Phase reports where the engine is in the session lifecycle.
func (e *Engine) Phase() Phase {
	switch {
	case e.session == nil:
		return PhaseIdle
	case e.session.Active:
		return PhaseActive
	default:
		return PhaseTerminal
	}
}

// Current returns the problem awaiting an answer, or nil.
func (e *Engine) Current() *problemgen.Problem {
	if e.session == nil {
		return nil
	}
	return e.session.CurrentProblem
}

// StartGame discards any previous session and begins a new one. The
// session is started even when the first problem cannot be generated;
// ErrNoProblem is returned in that case and CheckAnswer is a no-op.
func (e *Engine) StartGame(opts Options) error {
	switch opts.Topic {
	case problemgen.TopicArithmetic, problemgen.TopicFraction,
		problemgen.TopicPercent, problemgen.TopicWord:
	default:
		return fmt.Errorf("%w: %q", problemgen.ErrUnknownTopic, opts.Topic)
	}
	if opts.Mode != ModeQuiz {
		opts.Mode = ModePractice
	}

	s := &GameSession{
		ID:        uuid.New().String(),
		Mode:      opts.Mode,
		Topic:     opts.Topic,
		Request:   opts.Request.WithDefaults(),
		Active:    true,
		StartedAt: e.now(),
		seen:      make(map[string]bool),
	}
	if s.Mode == ModeQuiz {
		secs := opts.QuizSeconds
		if secs <= 0 {
			secs = DefaultQuizSeconds
		}
		s.QuizDuration = secs
		s.TimeRemaining = &secs
		s.QuizProblemCount = max(0, opts.QuizProblems)
	}
	e.session = s

	if !e.NextProblem(problemgen.Request{}) {
		return ErrNoProblem
	}
	return nil
}

// NextProblem replaces the current problem. Non-zero hint fields override
// the session's request from now on. Candidates already served this
// session are redrawn up to a fixed number of times, after which a repeat
// is accepted. A failed draw counts as an attempt. It returns false if
// the session is not active or every attempt failed.
func (e *Engine) NextProblem(hint problemgen.Request) bool {
	s := e.session
	if s == nil || !s.Active {
		return false
	}
	s.Request = s.Request.Merge(hint)

	var p *problemgen.Problem
	for attempt := 0; attempt < maxDedupAttempts; attempt++ {
		candidate, ok := e.gen.Generate(s.Topic, s.Request)
		if !ok {
			continue
		}
		p = candidate
		if !s.seen[p.ID] {
			break
		}
	}
	if p == nil {
		s.CurrentProblem = nil
		return false
	}

	s.seen[p.ID] = true
	s.CurrentProblem = p
	return true
}

// CheckAnswer scores value against the current problem. With no current
// problem or an inactive session it returns an incorrect Result and
// changes nothing.
func (e *Engine) CheckAnswer(value float64) Result {
	s := e.session
	if s == nil || !s.Active || s.CurrentProblem == nil {
		return Result{}
	}

	p := *s.CurrentProblem
	res := Result{Answer: p.Answer, AnswerText: p.AnswerText}

	if problemgen.CheckAnswer(value, &p) {
		res.Correct = true
		res.ScoreDelta = pointsPerCorrect + s.Streak
		s.Score += res.ScoreDelta
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)
		s.CorrectCount++
		if IsMilestone(s.Streak) {
			res.Milestone = s.Streak
		}
	} else {
		s.Streak = 0
		s.WrongCount++
	}
	res.Streak = s.Streak

	s.History = append(s.History, Attempt{Problem: p, Given: value, Correct: res.Correct})
	s.CurrentProblem = nil

	if s.Mode == ModeQuiz && s.QuizProblemCount > 0 && s.Answered() >= s.QuizProblemCount {
		e.end()
		res.Ended = true
	}
	return res
}

// Tick advances the quiz countdown by one second. It reports whether the
// session is still active afterwards. Practice sessions ignore ticks.
func (e *Engine) Tick() bool {
	s := e.session
	if s == nil || !s.Active {
		return false
	}
	if s.Mode != ModeQuiz || s.TimeRemaining == nil {
		return true
	}
	if *s.TimeRemaining > 0 {
		*s.TimeRemaining--
	}
	if *s.TimeRemaining == 0 {
		e.end()
		return false
	}
	return true
}

// AddTimeBonus extends the quiz countdown. It does nothing in practice
// mode, after the session ends, or for non-positive seconds.
func (e *Engine) AddTimeBonus(seconds int) {
	s := e.session
	if s == nil || !s.Active || s.Mode != ModeQuiz || s.TimeRemaining == nil || seconds <= 0 {
		return
	}
	*s.TimeRemaining += seconds
}

// EndGame makes the session terminal. Calling it again has no effect.
func (e *Engine) EndGame() {
	if e.session == nil || !e.session.Active {
		return
	}
	e.end()
}

func (e *Engine) end() {
	e.session.Active = false
	e.session.CurrentProblem = nil
	e.session.EndedAt = e.now()
}

// Snapshot returns a deep copy of the session for rendering and
// persistence. It returns nil when no session has been started.
func (e *Engine) Snapshot() *GameSession {
	s := e.session
	if s == nil {
		return nil
	}
	cp := *s
	if s.CurrentProblem != nil {
		p := *s.CurrentProblem
		cp.CurrentProblem = &p
	}
	if s.TimeRemaining != nil {
		t := *s.TimeRemaining
		cp.TimeRemaining = &t
	}
	cp.History = append([]Attempt(nil), s.History...)
	cp.seen = nil
	return &cp
}

// BonusFor returns the quiz time bonus in seconds for a correct answer
// on topic. Harder topics earn more time.
func BonusFor(topic problemgen.Topic) int {
	switch topic {
	case problemgen.TopicArithmetic:
		return 2
	case problemgen.TopicPercent:
		return 3
	case problemgen.TopicWord:
		return 4
	case problemgen.TopicFraction:
		return 5
	default:
		return 0
	}
}
