package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	sess "github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	snap := s.engine.Snapshot()
	if snap != nil && snap.TimeRemaining != nil {
		total := max(snap.QuizDuration, *snap.TimeRemaining)
		bar := components.NewTimerBar(*snap.TimeRemaining, total, min(width-8, 50))
		b.WriteString(layout.Center(bar.View(), width))
		b.WriteString("\n\n")
	}

	if s.showingFeedback {
		b.WriteString(s.renderFeedback(width))
		return b.String()
	}

	p := s.engine.Current()
	if p == nil {
		b.WriteString(layout.Center(theme.Hint.Render("Time's up!"), width))
		return b.String()
	}

	b.WriteString(renderProblem(p, width))
	b.WriteString("\n\n")
	b.WriteString(layout.Center("Answer: "+s.input.View(), width))
	b.WriteString("\n")
	if s.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Incorrect.Render(s.inputErr), width))
	}
	return b.String()
}

// renderProblem draws the prompt from its structured payload.
func renderProblem(p *problemgen.Problem, width int) string {
	textWidth := min(width-8, 64)

	switch pl := p.Payload.(type) {
	case problemgen.FractionPayload:
		label := theme.Hint.Render(pl.Tier.DisplayName())
		return layout.Center(label, width) + "\n\n" +
			layout.Center(theme.Card.Render(theme.Problem.Render(p.Display)), width)
	case problemgen.WordPayload:
		story := lipgloss.NewStyle().
			Width(textWidth).
			Foreground(theme.Text).
			Render(p.Display)
		return layout.Center(theme.Card.Render(story), width)
	default:
		return layout.Center(theme.Card.Render(theme.Problem.Render(p.Display)), width)
	}
}

func (s *GameScreen) renderFeedback(width int) string {
	var lines []string

	lines = append(lines, theme.Hint.Render(s.answered.Display))
	lines = append(lines, "")

	if s.last.Correct {
		msg := fmt.Sprintf("✓ Correct!  +%d", s.last.ScoreDelta)
		if s.bonus > 0 {
			msg += fmt.Sprintf("  (+%ds)", s.bonus)
		}
		lines = append(lines, theme.Correct.Render(msg))
		if s.last.Milestone > 0 {
			lines = append(lines, "", theme.Milestone.Render(fmt.Sprintf("★ %d in a row! ★", s.last.Milestone)))
		}
	} else {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("✗ Not quite. You said %s.", strings.TrimSpace(s.given))))
		lines = append(lines, theme.Body.Render("The answer is "+s.last.AnswerText))
	}

	if s.last.Ended || s.engine.Phase() == sess.PhaseTerminal {
		lines = append(lines, "", theme.Hint.Render("That's the last one. Press any key for your results."))
	} else {
		lines = append(lines, "", theme.Hint.Render("Press any key to continue"))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Center(l, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width int) string {
	return "\n\n" + layout.Center(theme.Body.Render("End this game now?"), width) + "\n\n" +
		layout.Center(theme.Hint.Render("Y to end, N to keep going"), width)
}

func renderError(width int, msg string) string {
	return "\n\n" + layout.Center(theme.Incorrect.Render("Could not start the game: "+msg), width) + "\n\n" +
		layout.Center(theme.Hint.Render("Press any key to go back"), width)
}
