package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Slider is the primary widget of a control pair: a bar stepped with keys
type Slider struct {
	value int
}

// Show implements control.Widget
func (s *Slider) Show(v int) { s.value = v }

// Value returns the position last shown
func (s *Slider) Value() int { return s.value }

// Render draws the bar for [min, max] at the given width
func (s *Slider) Render(min, max, width int, focused bool) string {
	if width < 3 {
		width = 3
	}
	filled := width
	if max > min {
		filled = (s.value - min) * (width - 1) / (max - min)
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width-1 {
		filled = width - 1
	}

	bar := strings.Repeat("━", filled) + "●" + strings.Repeat("─", width-1-filled)
	if focused {
		return styleSliderFocused.Render(bar)
	}
	return styleSubtle.Render(bar)
}

// NumberField is the secondary widget of a control pair: a typed value
type NumberField struct {
	input textinput.Model
}

// NewNumberField returns an unfocused field accepting up to width characters
func NewNumberField(width int) *NumberField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = width
	ti.Width = width
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Validate = func(s string) error {
		// Accept partial numeric input; the pair settles it on commit
		for _, r := range s {
			if (r < '0' || r > '9') && r != '-' && r != '.' {
				return strconv.ErrSyntax
			}
		}
		return nil
	}
	return &NumberField{input: ti}
}

// Show implements control.Widget
func (f *NumberField) Show(v int) { f.input.SetValue(strconv.Itoa(v)) }

// Value returns the raw text in the field
func (f *NumberField) Value() string { return f.input.Value() }

// Focus starts editing with the cursor at the end
func (f *NumberField) Focus() {
	f.input.Focus()
	f.input.CursorEnd()
}

// Blur stops editing
func (f *NumberField) Blur() { f.input.Blur() }

// Update forwards a key to the text input while editing
func (f *NumberField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// Focused reports whether the field is being edited
func (f *NumberField) Focused() bool { return f.input.Focused() }

// View renders the field
func (f *NumberField) View(highlight bool) string {
	if f.input.Focused() {
		return styleInputActive.Render(f.input.View())
	}
	text := lipgloss.NewStyle().Width(f.input.Width).Render(f.input.Value())
	if highlight {
		return styleInput.Render("[" + text + "]")
	}
	return styleSubtle.Render("[" + text + "]")
}
