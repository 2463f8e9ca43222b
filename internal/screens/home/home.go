package home

import (
	"context"
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/history"
	"github.com/abhisek/mathdrill/internal/screens/scores"
	sessionscreen "github.com/abhisek/mathdrill/internal/screens/session"
	sess "github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// Deps are the services the home screen hands to the screens it opens.
// Any repository may be nil; the matching menu entry is then disabled.
type Deps struct {
	// NewEngine returns a fresh session engine for each game.
	NewEngine func() *sess.Engine

	Results    sessionscreen.ResultSaver
	HighScores store.HighScoreRepo
	Sessions   store.SessionRepo

	// Defaults preselects the pickers and supplies the quiz limits.
	Defaults sess.Options
}

// field identifies one picker on the setup form.
type field int

const (
	fieldTopic field = iota
	fieldMode
	fieldOperator
	fieldRange
	fieldTier
	fieldGrade
	numFields
)

var (
	operatorOptions = []problemgen.Operator{
		problemgen.OpMixed, problemgen.OpAdd, problemgen.OpSubtract,
		problemgen.OpMultiply, problemgen.OpDivide,
	}
	baseRanges = []int{10, 20, 50, 100}
	grades     = []int{1, 2, 3, 4, 5, 6}
)

type bestLoadedMsg struct {
	Topic problemgen.Topic
	Mode  sess.Mode
	Best  *store.HighScore
}

// HomeScreen is the game setup form and main menu.
type HomeScreen struct {
	deps    Deps
	pickers [numFields]components.Picker
	ranges  []int
	menu    components.Menu

	// focus indexes visibleFields(); len(visibleFields()) is the menu.
	focus int
	best  *store.HighScore
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	def := deps.Defaults
	req := def.Request.WithDefaults()

	h := &HomeScreen{deps: deps, ranges: slices.Clone(baseRanges)}
	if !slices.Contains(h.ranges, req.Range) {
		h.ranges = append(h.ranges, req.Range)
		slices.Sort(h.ranges)
	}

	topics := problemgen.AllTopics()
	h.pickers[fieldTopic] = components.NewPicker("Topic",
		labels(topics, problemgen.Topic.DisplayName), indexOf(topics, def.Topic))

	modes := sess.AllModes()
	h.pickers[fieldMode] = components.NewPicker("Mode",
		labels(modes, sess.Mode.DisplayName), indexOf(modes, def.Mode))

	h.pickers[fieldOperator] = components.NewPicker("Operator",
		labels(operatorOptions, operatorLabel), indexOf(operatorOptions, req.Operator))

	h.pickers[fieldRange] = components.NewPicker("Range",
		labels(h.ranges, func(n int) string { return "0-" + strconv.Itoa(n) }), indexOf(h.ranges, req.Range))

	tiers := problemgen.AllTiers()
	h.pickers[fieldTier] = components.NewPicker("Tier",
		labels(tiers, problemgen.Tier.DisplayName), indexOf(tiers, req.Tier))

	h.pickers[fieldGrade] = components.NewPicker("Grade",
		labels(grades, strconv.Itoa), indexOf(grades, req.Grade))

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start Game", Action: h.startGame},
		{Label: "High Scores", Action: h.openScores, Disabled: deps.HighScores == nil},
		{Label: "History", Action: h.openHistory, Disabled: deps.Sessions == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.setFocus(0)
	return h
}

func labels[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func indexOf[T comparable](items []T, v T) int {
	return max(0, slices.Index(items, v))
}

func operatorLabel(op problemgen.Operator) string {
	if op == problemgen.OpMixed {
		return "Mixed"
	}
	return string(op)
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadBest()
}

// Refresh reloads the best score after a game returns to this screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadBest()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.onMenu() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Topic returns the selected topic.
func (h *HomeScreen) Topic() problemgen.Topic {
	return problemgen.AllTopics()[h.pickers[fieldTopic].Selected]
}

// Mode returns the selected mode.
func (h *HomeScreen) Mode() sess.Mode {
	return sess.AllModes()[h.pickers[fieldMode].Selected]
}

// Options builds the game options from the current selection.
func (h *HomeScreen) Options() sess.Options {
	return sess.Options{
		Mode:         h.Mode(),
		Topic:        h.Topic(),
		QuizSeconds:  h.deps.Defaults.QuizSeconds,
		QuizProblems: h.deps.Defaults.QuizProblems,
		Request: problemgen.Request{
			Operator: operatorOptions[h.pickers[fieldOperator].Selected],
			Range:    h.ranges[h.pickers[fieldRange].Selected],
			Tier:     problemgen.AllTiers()[h.pickers[fieldTier].Selected],
			Grade:    grades[h.pickers[fieldGrade].Selected],
		},
	}
}

// visibleFields lists the pickers that apply to the selected topic.
func (h *HomeScreen) visibleFields() []field {
	fields := []field{fieldTopic, fieldMode}
	switch h.Topic() {
	case problemgen.TopicArithmetic:
		fields = append(fields, fieldOperator, fieldRange)
	case problemgen.TopicFraction:
		fields = append(fields, fieldTier)
	case problemgen.TopicWord:
		fields = append(fields, fieldOperator, fieldGrade)
	}
	return fields
}

func (h *HomeScreen) onMenu() bool {
	return h.focus >= len(h.visibleFields())
}

func (h *HomeScreen) setFocus(i int) {
	h.focus = i
	visible := h.visibleFields()
	for f := range h.pickers {
		h.pickers[f].Focused = false
	}
	if i < len(visible) {
		h.pickers[visible[i]].Focused = true
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bestLoadedMsg:
		if msg.Topic == h.Topic() && msg.Mode == h.Mode() {
			h.best = msg.Best
		}
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	visible := h.visibleFields()

	if h.onMenu() {
		if k := msg.String(); (k == "up" || k == "k") && h.menu.Selected == firstEnabled(h.menu) {
			h.setFocus(len(visible) - 1)
			return h, nil
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	switch msg.String() {
	case "up", "k":
		if h.focus > 0 {
			h.setFocus(h.focus - 1)
		}
		return h, nil
	case "down", "j", "tab":
		h.setFocus(h.focus + 1)
		if h.onMenu() {
			h.menu.Selected = firstEnabled(h.menu)
		}
		return h, nil
	case "enter":
		return h, h.startGame()
	}

	f := visible[h.focus]
	before := h.pickers[f].Selected
	h.pickers[f], _ = h.pickers[f].Update(msg)
	if h.pickers[f].Selected == before {
		return h, nil
	}
	if f == fieldTopic || f == fieldMode {
		h.best = nil
		return h, h.loadBest()
	}
	return h, nil
}

func firstEnabled(m components.Menu) int {
	for i, it := range m.Items {
		if !it.Disabled {
			return i
		}
	}
	return 0
}

func (h *HomeScreen) startGame() tea.Cmd {
	if h.deps.NewEngine == nil {
		return nil
	}
	game := sessionscreen.New(h.deps.NewEngine(), h.Options(), h.deps.Results)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: game}
	}
}

func (h *HomeScreen) openScores() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scores.New(h.deps.HighScores)}
	}
}

func (h *HomeScreen) openHistory() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: history.New(h.deps.Sessions)}
	}
}

func (h *HomeScreen) loadBest() tea.Cmd {
	repo := h.deps.HighScores
	if repo == nil {
		return nil
	}
	topic, mode := h.Topic(), h.Mode()
	return func() tea.Msg {
		best, ok := repo.Get(context.Background(), string(topic), string(mode))
		if !ok {
			best = nil
		}
		return bestLoadedMsg{Topic: topic, Mode: mode, Best: best}
	}
}
