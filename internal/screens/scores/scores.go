package scores

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

type scoresLoadedMsg struct {
	Entries []store.HighScoreEntry
	Err     error
}

// ScoresScreen shows the best result for every topic and mode.
type ScoresScreen struct {
	repo    store.HighScoreRepo
	entries map[string]store.HighScore
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ScoresScreen)(nil)
var _ screen.KeyHintProvider = (*ScoresScreen)(nil)

// New creates a new ScoresScreen.
func New(repo store.HighScoreRepo) *ScoresScreen {
	return &ScoresScreen{repo: repo}
}

func (s *ScoresScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		entries, err := repo.All(context.Background())
		return scoresLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *ScoresScreen) Title() string {
	return "High Scores"
}

func (s *ScoresScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *ScoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.entries = make(map[string]store.HighScore, len(msg.Entries))
		for _, e := range msg.Entries {
			s.entries[key(e.Topic, e.Mode)] = e.HighScore
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func key(topic, mode string) string {
	return topic + "/" + mode
}

func (s *ScoresScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect.Render("\n\nError: "+s.errMsg), width)
	}
	if !s.loaded {
		return layout.Center(theme.Hint.Render("\n\nLoading scores..."), width)
	}

	var b strings.Builder
	b.WriteString("\n")

	header := fmt.Sprintf("%-14s %-9s %6s %7s  %s", "Topic", "Mode", "Score", "Streak", "Date")
	b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", lipgloss.Width(header))), width))
	b.WriteString("\n")

	for _, topic := range problemgen.AllTopics() {
		for _, mode := range session.AllModes() {
			hs, ok := s.entries[key(string(topic), string(mode))]
			var line string
			style := theme.Body
			if ok {
				line = fmt.Sprintf("%-14s %-9s %6d %7d  %s",
					topic.DisplayName(), mode.DisplayName(), hs.Score, hs.Streak,
					hs.Date.Local().Format("2006-01-02"))
			} else {
				line = fmt.Sprintf("%-14s %-9s %6s %7s  %s",
					topic.DisplayName(), mode.DisplayName(), "-", "-", "")
				style = theme.Hint
			}
			b.WriteString(layout.Center(style.Render(line), width))
			b.WriteString("\n")
		}
	}

	return b.String()
}
