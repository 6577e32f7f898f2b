package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with ASMan styling and an inline
// error line.
type TextInput struct {
	Model       textinput.Model
	Label       string
	NumericOnly bool
	err         string
}

// NewTextInput creates a new styled text input. A charLimit of zero means
// no limit.
func NewTextInput(label, placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:       ti,
		Label:       label,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if t.NumericOnly && len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return t, nil
		}
		if len(key) == 1 || key == "backspace" {
			t.err = ""
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and any error.
func (t TextInput) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label) + "\n")
	}
	b.WriteString(t.Model.View())
	if t.err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.err))
	}
	return b.String()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.err = ""
}

// NumericValue returns the input value as an integer.
func (t TextInput) NumericValue() (int64, error) {
	return strconv.ParseInt(t.Value(), 10, 64)
}

// SetError shows msg under the input until the next edit.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Err returns the shown error, if any.
func (t TextInput) Err() string {
	return t.err
}
