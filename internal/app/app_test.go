package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	sessionscreen "github.com/abhisek/mathdrill/internal/screens/session"
	sess "github.com/abhisek/mathdrill/internal/session"
)

func TestDefaultOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Range = 100
	cfg.FractionTier = 3
	cfg.QuizProblems = 10

	opts := DefaultOptions(cfg)
	if opts.Request.Range != 100 || opts.Request.Tier != problemgen.TierMixedNumbers {
		t.Errorf("Request = %+v", opts.Request)
	}
	if opts.QuizSeconds != 60 || opts.QuizProblems != 10 {
		t.Errorf("quiz limits = %d/%d", opts.QuizSeconds, opts.QuizProblems)
	}
}

func TestNewEngineFactory_AllTopics(t *testing.T) {
	newEngine := NewEngineFactory(42)
	for _, topic := range problemgen.AllTopics() {
		e := newEngine()
		if err := e.StartGame(sess.Options{Topic: topic}); err != nil {
			t.Errorf("StartGame(%s): %v", topic, err)
			continue
		}
		if e.Current() == nil {
			t.Errorf("%s: no current problem", topic)
		}
	}
}

func TestNewEngineFactory_IndependentEngines(t *testing.T) {
	opts := sess.Options{Topic: problemgen.TopicArithmetic, Request: problemgen.Request{Range: 1000}}

	first := NewEngineFactory(7)
	busy, idle := first(), first()
	if err := busy.StartGame(opts); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	for i := 0; i < 10; i++ {
		busy.NextProblem(problemgen.Request{})
	}
	if err := idle.StartGame(opts); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	second := NewEngineFactory(7)
	_ = second()
	fresh := second()
	if err := fresh.StartGame(opts); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if idle.Current().ID != fresh.Current().ID {
		t.Errorf("second engine problem = %s, want %s regardless of the first engine's draws",
			idle.Current().ID, fresh.Current().ID)
	}
}

func TestAppModel_StartGamePushesGame(t *testing.T) {
	start := DefaultOptions(config.DefaultConfig())
	start.Mode = sess.ModeQuiz
	m := newAppModel(Options{Config: config.DefaultConfig(), Start: &start})

	if m.start == nil {
		t.Fatal("expected a start screen")
	}
	if _, ok := m.start.(*sessionscreen.GameScreen); !ok {
		t.Errorf("start screen is %T", m.start)
	}

	updated, _ := m.Update(router.PushScreenMsg{Screen: m.start})
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
}

func TestAppModel_ViewShowsStatus(t *testing.T) {
	start := DefaultOptions(config.DefaultConfig())
	start.Mode = sess.ModeQuiz
	m := newAppModel(Options{Config: config.DefaultConfig(), Start: &start})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)
	updated, _ = m.Update(router.PushScreenMsg{Screen: m.start})
	m = updated.(AppModel)

	view := m.render()
	if !strings.Contains(view, "Score 0") || !strings.Contains(view, "1:00") {
		t.Errorf("header missing status:\n%s", view)
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{Config: config.DefaultConfig()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	view := updated.(AppModel).render()
	if !strings.Contains(view, "Terminal too small") {
		t.Errorf("expected size warning, got:\n%s", view)
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Config: config.DefaultConfig()})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c produced %T, want QuitMsg", cmd())
	}
}
