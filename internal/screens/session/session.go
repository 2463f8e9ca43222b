package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/summary"
	sess "github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// ResultSaver persists a finished game. *store.Store satisfies it.
type ResultSaver interface {
	SaveResult(ctx context.Context, rec store.SessionRecord, hs store.HighScore) (bool, error)
}

// GameScreen implements screen.Screen for a running practice or quiz game.
type GameScreen struct {
	engine  *sess.Engine
	opts    sess.Options
	results ResultSaver
	input   components.AnswerInput

	// answered is the problem the feedback refers to.
	answered        problemgen.Problem
	given           string
	last            sess.Result
	bonus           int
	showingFeedback bool
	quitConfirm     bool
	finished        bool
	inputErr        string
	errMsg          string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a GameScreen. results may be nil, in which case nothing
// is persisted.
func New(engine *sess.Engine, opts sess.Options, results ResultSaver) *GameScreen {
	return &GameScreen{
		engine:  engine,
		opts:    opts,
		results: results,
		input:   components.NewAnswerInput("Type your answer...", 16),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	if err := s.engine.StartGame(s.opts); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	cmds := []tea.Cmd{s.input.Init()}
	if s.opts.Mode == sess.ModeQuiz {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

func (s *GameScreen) Title() string {
	return s.opts.Topic.DisplayName() + " · " + s.opts.Mode.DisplayName()
}

func (s *GameScreen) Status() layout.Status {
	snap := s.engine.Snapshot()
	if snap == nil {
		return layout.Status{}
	}
	return layout.Status{
		Score:    snap.Score,
		Streak:   snap.Streak,
		TimeLeft: snap.TimeRemaining,
	}
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Next problem"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End game"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case gameEndMsg:
		return s, s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.engine.Phase() == sess.PhaseActive && !s.showingFeedback && !s.quitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GameScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.finished || s.engine.Phase() != sess.PhaseActive {
		return s, nil
	}
	if !s.engine.Tick() {
		return s, func() tea.Msg { return gameEndMsg{} }
	}
	return s, tickCmd()
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.finished {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return gameEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		return s.advance()
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.inputErr = ""
	return s, cmd
}

func (s *GameScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	current := s.engine.Current()
	if current == nil {
		return s, nil
	}

	raw := s.input.Value()
	value, err := problemgen.ParseAnswer(raw)
	if err != nil {
		s.inputErr = "Try a number like 12, 0.5, 3/4 or 1 1/2"
		return s, nil
	}

	s.answered = *current
	s.given = raw
	s.last = s.engine.CheckAnswer(value)
	s.input.Submit(s.last.Correct)

	s.bonus = 0
	if s.last.Correct && s.opts.Mode == sess.ModeQuiz && !s.last.Ended {
		s.bonus = sess.BonusFor(s.opts.Topic)
		s.engine.AddTimeBonus(s.bonus)
	}

	s.showingFeedback = true
	return s, nil
}

// advance dismisses feedback and serves the next problem, or ends the
// game if the session is over.
func (s *GameScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.input.Reset()

	if s.engine.Phase() != sess.PhaseActive || !s.engine.NextProblem(problemgen.Request{}) {
		return s, func() tea.Msg { return gameEndMsg{} }
	}
	return s, nil
}

// finish ends the engine's session, persists the result, and swaps this
// screen for the summary.
func (s *GameScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	s.engine.EndGame()

	sum := sess.BuildSummary(s.engine.Snapshot())
	results := s.results
	return func() tea.Msg {
		var (
			newBest bool
			err     error
		)
		if results != nil && sum.Answered > 0 {
			newBest, err = results.SaveResult(context.Background(), Record(sum), BestOf(sum))
		}
		return router.ReplaceScreenMsg{Screen: summary.New(sum, newBest, err)}
	}
}

// Record converts a summary into its persisted form.
func Record(sum *sess.SessionSummary) store.SessionRecord {
	return store.SessionRecord{
		SessionID:  sum.ID,
		Topic:      string(sum.Topic),
		Mode:       string(sum.Mode),
		Score:      sum.Score,
		BestStreak: sum.BestStreak,
		Correct:    sum.CorrectCount,
		Wrong:      sum.WrongCount,
		Duration:   sum.Duration,
		EndedAt:    sum.EndedAt,
	}
}

// BestOf converts a summary into a high-score candidate.
func BestOf(sum *sess.SessionSummary) store.HighScore {
	return store.HighScore{
		Score:        sum.Score,
		Streak:       sum.BestStreak,
		CorrectCount: sum.CorrectCount,
		Date:         sum.EndedAt,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
