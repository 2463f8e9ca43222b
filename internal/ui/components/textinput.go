package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// answerRunes are the characters an answer may contain: digits, a
// decimal point, a fraction bar, a space for mixed numbers, a percent
// sign, and a leading minus.
const answerRunes = "0123456789./ %-"

// AnswerInput wraps bubbles/textinput and accepts only answer characters.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput(placeholder string, maxWidth int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update filters printable keys and forwards the rest to the text input.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if key == "space" {
			key = " "
		}
		if len([]rune(key)) == 1 && !isAnswerRune([]rune(key)[0]) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func isAnswerRune(r rune) bool {
	return strings.ContainsRune(answerRunes, r)
}

// View renders the input with a check or cross once submitted.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		if a.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (a *AnswerInput) Submit(valid bool) {
	a.submitted = true
	a.valid = valid
}

// Reset clears the value and the submitted mark.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
	a.submitted = false
	a.valid = false
}
