package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/randsrc"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/home"
	sessionscreen "github.com/abhisek/mathdrill/internal/screens/session"
	sess "github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/wordproblem"
)

// Options holds dependencies for the application.
type Options struct {
	// Store persists results. Nil runs without high scores or history.
	Store *store.Store

	Config config.Config

	// Start, when set, opens a game immediately instead of the menu.
	Start *sess.Options
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  screen.Screen
	width  int
	height int
}

// NewEngineFactory returns a constructor for session engines. Each engine
// owns its generators and random source; the n-th engine is seeded with
// seed+n, so a fixed seed reproduces a whole run. A zero seed seeds every
// engine from the clock. The factory itself is not safe for concurrent use.
func NewEngineFactory(seed uint64) func() *sess.Engine {
	var n uint64
	return func() *sess.Engine {
		engineSeed := seed
		if seed != 0 {
			engineSeed = seed + n
			n++
		}
		src := randsrc.New(engineSeed)
		return sess.NewEngine(problemgen.New(src, wordproblem.NewEngine(nil, src)))
	}
}

// DefaultOptions converts configuration into the initial game selection.
func DefaultOptions(cfg config.Config) sess.Options {
	return sess.Options{
		Mode:         sess.ModePractice,
		Topic:        problemgen.TopicArithmetic,
		QuizSeconds:  cfg.QuizSeconds,
		QuizProblems: cfg.QuizProblems,
		Request: problemgen.Request{
			Operator: problemgen.OpMixed,
			Range:    cfg.Range,
			Tier:     problemgen.Tier(cfg.FractionTier),
			Grade:    cfg.Grade,
		},
	}
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	newEngine := NewEngineFactory(opts.Config.Seed)

	deps := home.Deps{
		NewEngine: newEngine,
		Defaults:  DefaultOptions(opts.Config),
	}
	if opts.Start != nil {
		deps.Defaults = *opts.Start
	}
	if opts.Store != nil {
		deps.Results = opts.Store
		deps.HighScores = opts.Store.HighScores()
		deps.Sessions = opts.Store.Sessions()
	}

	m := AppModel{router: router.New(home.New(deps))}
	if opts.Start != nil {
		m.start = sessionscreen.New(newEngine(), *opts.Start, deps.Results)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var status *layout.Status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			st := sp.Status()
			status = &st
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(0, m.height-headerHeight-footerHeight)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
