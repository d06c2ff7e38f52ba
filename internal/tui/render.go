package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/snapgen/internal/health"
	"github.com/studiowebux/snapgen/internal/keybinds"
	"github.com/studiowebux/snapgen/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(colorCyan).
			Foreground(colorCyan)

	styleTabInactive = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(colorGray).
				Foreground(colorGray)

	styleSliderFocused = lipgloss.NewStyle().
				Foreground(colorCyan)

	styleInput = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleInputActive = lipgloss.NewStyle().
				Foreground(colorYellow)

	styleButton = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray)

	styleButtonFocused = styleButton.
				BorderForeground(colorGreen).
				Foreground(colorGreen).
				Bold(true)

	styleButtonDisabled = styleButton.
				Foreground(colorGray)
)

// renderMain renders the tabs, the active form, its results and the status bar
func (m Model) renderMain() string {
	sections := []string{
		m.renderTabs(),
		m.renderForm(),
	}

	if errMsg := m.app.Results().Error(); errMsg != "" {
		sections = append(sections, styleError.Render("✗ "+errMsg))
	}

	if m.app.Results().Visible() {
		sections = append(sections, m.renderResults())
	}

	body := lipgloss.NewStyle().
		Padding(0, 1).
		Height(m.height - 1). // Leave 1 line for status bar
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		m.renderStatusBar(),
	)
}

// renderTabs draws the tab strip; exactly one tab is highlighted
func (m Model) renderTabs() string {
	var tabs []string
	for i, id := range types.AllTabs {
		label := fmt.Sprintf("%d %s", i+1, id.Label())
		if m.app.Tabs().IsActive(id) {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// renderForm draws the rows of the active tab
func (m Model) renderForm() string {
	fields := formFields[m.app.ActiveTab()]
	formFocused := m.focusedPanel == panelForm && m.mode != ModeHelp

	var lines []string
	for i, f := range fields {
		focused := formFocused && i == m.fieldIndex
		lines = append(lines, m.renderField(f, focused))
	}
	return lipgloss.NewStyle().PaddingTop(1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderField(f field, focused bool) string {
	cursor := "  "
	if focused {
		cursor = styleTitle.Render("▸ ")
	}

	if name, ok := pairFields[f]; ok {
		pair := m.pairByName(name)
		label := fieldLabel(f)
		if f == fieldCount && pair.Max() < pair.Ceiling() {
			label = fmt.Sprintf("%s (max %d)", label, pair.Max())
		}
		label = lipgloss.NewStyle().Width(LabelWidth).Render(label)
		slider := m.sliders[name].Render(pair.Min(), pair.Max(), SliderWidth, focused)
		number := m.numbers[name].View(focused)
		return cursor + label + slider + "  " + number
	}

	if f == fieldSubmit {
		return cursor + m.renderSubmit(focused)
	}

	box := "[ ]"
	if m.checked(f) {
		box = styleSuccess.Render("[x]")
	}
	label := fieldLabel(f)
	if focused {
		label = styleSelected.Render(label)
	}
	return cursor + box + " " + label
}

// renderSubmit draws the submit control; its label and disabled state are
// derived from the form's request state
func (m Model) renderSubmit(focused bool) string {
	form := m.app.ActiveTab()
	orch := m.app.Orchestrator()
	label := orch.ButtonLabel(form)

	if orch.ButtonDisabled(form) {
		return styleButtonDisabled.Render(m.spinner.View() + " " + label)
	}
	if focused {
		return styleButtonFocused.Render(label)
	}
	return styleButton.Render(label)
}

func (m Model) checked(f field) bool {
	if c, ok := charTypeFields[f]; ok {
		return m.app.HasCharType(c)
	}
	switch f {
	case fieldCapitalize:
		return m.app.Capitalize()
	case fieldDashes:
		return m.app.Dashes()
	case fieldDigit:
		return m.app.Digit()
	}
	return false
}

func fieldLabel(f field) string {
	if c, ok := charTypeFields[f]; ok {
		return c.Label()
	}
	switch f {
	case fieldLength:
		return "String length"
	case fieldCount:
		return "Number of strings"
	case fieldWordCount:
		return "Number of words"
	case fieldCapitalize:
		return "Capitalize words"
	case fieldDashes:
		return "Separate with dashes"
	case fieldDigit:
		return "Add a digit"
	}
	return ""
}

// renderResults draws the titled result list
func (m Model) renderResults() string {
	border := colorGray
	if m.focusedPanel == panelResults {
		border = colorGreen
	}

	title := styleTitle.Render(m.app.Results().Title())
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(title + "\n" + m.resultsView.View())
}

// updateResultsView rebuilds the result rows and keeps the selection visible
func (m *Model) updateResultsView() {
	rows := m.app.Results().Rows()
	if m.resultIndex >= len(rows) {
		m.resultIndex = 0
	}

	width := m.resultsView.Width - ViewportBorderWidth
	var lines []string
	for i, row := range rows {
		label := styleSubtle.Render(row.Label)
		if row.Copied {
			label = styleSuccess.Render(row.Label)
		}
		text := row.Text
		textWidth := width - lipgloss.Width(row.Label) - 4
		if textWidth < 1 {
			textWidth = 1
		}
		if lipgloss.Width(text) > textWidth && textWidth > 1 {
			text = text[:textWidth-1] + "…"
		}
		line := fmt.Sprintf("%-*s  %s", textWidth, text, label)
		if i == m.resultIndex && m.focusedPanel == panelResults {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	m.resultsView.SetContent(strings.Join(lines, "\n"))

	// Scroll so the selected row stays on screen
	if m.resultIndex < m.resultsView.YOffset {
		m.resultsView.SetYOffset(m.resultIndex)
	} else if m.resultIndex >= m.resultsView.YOffset+m.resultsView.Height {
		m.resultsView.SetYOffset(m.resultIndex - m.resultsView.Height + 1)
	}
}

// renderStatusBar renders the health indicator and the footer message
func (m Model) renderStatusBar() string {
	status := m.app.Health().Status()

	var indicator string
	switch status.Class {
	case health.ClassHealthy:
		indicator = styleSuccess.Render("● " + status.Text)
	case health.ClassUnhealthy:
		indicator = styleError.Render("● " + status.Text)
	default:
		indicator = styleWarning.Render("● " + status.Text)
	}

	right := m.statusMsg
	if right == "" {
		context := keybinds.ContextForm
		if m.focusedPanel == panelResults {
			context = keybinds.ContextResults
		}
		right = fmt.Sprintf("%s help  %s quit",
			m.keybinds.GetBindingString(context, keybinds.ActionHelp),
			m.keybinds.GetBindingString(context, keybinds.ActionQuit))
	}
	right = styleSubtle.Render(right)

	gap := m.width - lipgloss.Width(indicator) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + indicator + strings.Repeat(" ", gap) + right
}

// renderHelp renders the keybinding reference
func (m Model) renderHelp() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(m.width - ViewportBorderWidth).
		Render(styleTitle.Render("Keybindings") + "\n\n" + m.helpView.View() + "\n" +
			styleSubtle.Render("? / esc close"))
}

// renderHelpContent lists every binding, grouped by context
func (m Model) renderHelpContent() string {
	var sb strings.Builder
	for _, context := range keybinds.AllContexts {
		sb.WriteString(styleTitle.Render(strings.ToUpper(string(context))) + "\n")
		for _, action := range keybinds.AllActions {
			keys := m.keybinds.GetBinding(context, action)
			if len(keys) == 0 || (context != keybinds.ContextGlobal && !bindsIn(m.keybinds, context, action)) {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", strings.Join(displayKeys(keys), ", "), action.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// bindsIn reports whether action has a binding specific to context
func bindsIn(r *keybinds.Registry, context keybinds.Context, action keybinds.Action) bool {
	for _, b := range r.ListBindings(context) {
		if b.Context == context && b.Action == action {
			return true
		}
	}
	return false
}

func displayKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
