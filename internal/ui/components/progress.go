package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// lowTimeSeconds switches the bar to the warning color.
const lowTimeSeconds = 10

// TimerBar displays the quiz countdown as a shrinking bar.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewTimerBar creates a timer bar. Bonuses can push Remaining past
// Total, in which case the bar is drawn full.
func NewTimerBar(remaining, total, width int) TimerBar {
	return TimerBar{Remaining: remaining, Total: total, Width: width}
}

// View renders the bar followed by the clock.
func (t TimerBar) View() string {
	clock := " " + layout.FormatClock(t.Remaining)
	barWidth := max(4, t.Width-lipgloss.Width(clock))

	var frac float64
	if t.Total > 0 {
		frac = float64(t.Remaining) / float64(t.Total)
	}
	filled := min(barWidth, max(0, int(float64(barWidth)*frac)))
	empty := barWidth - filled

	fill := theme.TimerFilled
	if t.Remaining <= lowTimeSeconds {
		fill = theme.TimerLow
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.TimerEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(clock)
}
