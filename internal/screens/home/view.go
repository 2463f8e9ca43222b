package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const banner = `┌┬┐┌─┐┌┬┐┬ ┬  ┌┬┐┬─┐┬┬  ┬
│││├─┤ │ ├─┤   ││├┬┘││  │
┴ ┴┴ ┴ ┴ ┴ ┴  ─┴┘┴└─┴┴─┘┴─┘`

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + 6)

	var sections []string

	if compact {
		sections = append(sections, theme.Title.Width(width).Render("MATH DRILL"))
	} else {
		sections = append(sections,
			layout.Center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner), width))
	}

	sections = append(sections, layout.Center(h.renderBest(), width))
	sections = append(sections, layout.Center(h.renderForm(), width))

	menu := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(strings.TrimRight(h.renderMenu(), "\n"))
	sections = append(sections, layout.Center(menu, width))

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) renderBest() string {
	label := fmt.Sprintf("%s · %s", h.Topic().DisplayName(), h.Mode().DisplayName())
	if h.best == nil {
		return theme.Hint.Render(label + ": no high score yet")
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(
		fmt.Sprintf("%s best: %d (streak %d)", label, h.best.Score, h.best.Streak))
}

func (h *HomeScreen) renderForm() string {
	var lines []string
	for _, f := range h.visibleFields() {
		lines = append(lines, h.pickers[f].View())
	}
	// Left-align rows inside the centered block.
	return lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

func (h *HomeScreen) renderMenu() string {
	if h.onMenu() {
		return h.menu.View()
	}
	// Without focus the menu shows no cursor.
	m := h.menu
	m.Selected = -1
	return m.View()
}
