package history

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

// recentLimit is how many finished games the screen loads.
const recentLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen lists recently finished games.
type HistoryScreen struct {
	repo     store.SessionRepo
	sessions []store.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		sessions, err := repo.Recent(context.Background(), recentLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return "\n\n" + layout.Center(theme.Incorrect.Render("Error: "+s.errMsg), width)
	case !s.loaded:
		return "\n\n" + layout.Center(theme.Hint.Render("Loading history..."), width)
	case len(s.sessions) == 0:
		return "\n\n" + layout.Center(theme.Hint.Render("No games yet. Start playing!"), width)
	}

	var b strings.Builder
	b.WriteString("\n")

	first, last := s.window(height)
	for i := first; i < last; i++ {
		rec := s.sessions[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-13s %-8s  %4d pts  %s",
			prefix,
			rec.EndedAt.Local().Format("Jan 02 15:04"),
			problemgen.Topic(rec.Topic).DisplayName(),
			session.Mode(rec.Mode).DisplayName(),
			rec.Score,
			layout.FormatClock(int(rec.Duration.Seconds())))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			var accuracy float64
			if answered := rec.Correct + rec.Wrong; answered > 0 {
				accuracy = float64(rec.Correct) / float64(answered) * 100
			}
			detail := fmt.Sprintf("    %d correct, %d wrong (%.0f%%), best streak %d",
				rec.Correct, rec.Wrong, accuracy, rec.BestStreak)
			b.WriteString(layout.Center(theme.Hint.Render(detail), width))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// window returns the slice of rows that fits in height, keeping the
// selected row visible.
func (s *HistoryScreen) window(height int) (int, int) {
	open := 0
	for _, on := range s.expanded {
		if on {
			open++
		}
	}
	rows := max(1, height-2-open)
	if len(s.sessions) <= rows {
		return 0, len(s.sessions)
	}
	first := max(0, s.selected-rows+1)
	return first, min(len(s.sessions), first+rows)
}
