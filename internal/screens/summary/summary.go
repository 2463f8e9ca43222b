package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// maxMissedShown caps the review list of wrong answers.
const maxMissedShown = 5

// SummaryScreen displays the result of a finished game.
type SummaryScreen struct {
	summary *session.SessionSummary
	newBest bool
	saveErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. newBest marks a new high score;
// saveErr is shown when the result could not be stored.
func New(summary *session.SessionSummary, newBest bool, saveErr error) *SummaryScreen {
	return &SummaryScreen{summary: summary, newBest: newBest, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	heading := "Practice complete!"
	if sum.Mode == session.ModeQuiz {
		heading = "Quiz complete!"
	}
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Score: %d", sum.Score))
	b.WriteString(layout.Center(score, width))
	b.WriteString("\n")
	if s.newBest {
		b.WriteString(layout.Center(theme.Milestone.Render("★ New high score! ★"), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("Correct: %d    Wrong: %d    Accuracy: %.0f%%    Best streak: %d",
		sum.CorrectCount, sum.WrongCount, sum.Accuracy*100, sum.BestStreak)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Hint.Render("Time: "+layout.FormatClock(int(sum.Duration.Seconds()))), width))
	b.WriteString("\n")

	if len(sum.Missed) > 0 && !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(renderMissed(sum.Missed, width))
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Incorrect.Render("Could not save result: "+s.saveErr.Error()), width))
		b.WriteString("\n")
	}

	return b.String()
}

func renderMissed(missed []session.Attempt, width int) string {
	var b strings.Builder

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review"), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(divider, width))
	b.WriteString("\n")

	shown := missed
	if len(shown) > maxMissedShown {
		shown = shown[:maxMissedShown]
	}
	for _, a := range shown {
		line := fmt.Sprintf("%s  →  %s", promptLine(a.Problem), a.Problem.AnswerText)
		b.WriteString(layout.Center(theme.Body.Render(line), width))
		b.WriteString("\n")
	}
	if extra := len(missed) - len(shown); extra > 0 {
		b.WriteString(layout.Center(theme.Hint.Render(fmt.Sprintf("...and %d more", extra)), width))
		b.WriteString("\n")
	}
	return b.String()
}

// promptLine shortens word problems to their equation.
func promptLine(p problemgen.Problem) string {
	if w, ok := p.Payload.(problemgen.WordPayload); ok {
		return fmt.Sprintf("%d %s %d", w.Operand1, w.Operator, w.Operand2)
	}
	return strings.TrimSuffix(p.Display, " = ?")
}
