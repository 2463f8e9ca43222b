package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Picker cycles through a fixed list of options with left and right.
type Picker struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewPicker creates a picker with the option at selected chosen.
func NewPicker(label string, options []string, selected int) Picker {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Picker{Label: label, Options: options, Selected: selected}
}

// Update handles left/right cycling while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused || len(p.Options) == 0 {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		p.Selected = (p.Selected - 1 + len(p.Options)) % len(p.Options)
	case "right", "l", "space", " ":
		p.Selected = (p.Selected + 1) % len(p.Options)
	}
	return p, nil
}

// Value returns the selected option.
func (p Picker) Value() string {
	if len(p.Options) == 0 {
		return ""
	}
	return p.Options[p.Selected]
}

// View renders "Label  ◂ value ▸".
func (p Picker) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(p.Label)
	value := fmt.Sprintf("◂ %s ▸", p.Value())
	if p.Focused {
		return "  " + label + theme.Selected.Render(value)
	}
	return "  " + label + theme.Unselected.Render(value)
}
