package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/snapgen/internal/keybinds"
	"github.com/studiowebux/snapgen/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeNumberEdit:
		return m.handleNumberEditKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	if m.focusedPanel == panelResults {
		return m.handleResultsKeys(msg)
	}
	return m.handleFormKeys(msg)
}

// handleGlobalAction runs actions shared by the form and result contexts.
// It reports false when the action belongs to the caller.
func (m *Model) handleGlobalAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit, true
	case keybinds.ActionHelp:
		m.mode = ModeHelp
		m.helpView.SetContent(m.renderHelpContent())
		m.helpView.GotoTop()
		return nil, true
	case keybinds.ActionSwitchTab:
		m.app.Tabs().Next()
		m.afterTabChange()
		return nil, true
	case keybinds.ActionTabStrings:
		return m.selectTab(types.TabStrings), true
	case keybinds.ActionTabPassphrase:
		return m.selectTab(types.TabPassphrase), true
	case keybinds.ActionSubmit:
		return m.submit(), true
	}
	return nil, false
}

// handleFormKeys handles the request form
func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String())
	if !ok {
		return nil
	}
	if cmd, handled := m.handleGlobalAction(action); handled {
		return cmd
	}

	fields := m.currentFields()
	f := m.currentField()

	switch action {
	case keybinds.ActionNextField:
		m.fieldIndex = (m.fieldIndex + 1) % len(fields)
	case keybinds.ActionPrevField:
		m.fieldIndex = (m.fieldIndex - 1 + len(fields)) % len(fields)
	case keybinds.ActionIncrement:
		m.stepFocused(1)
	case keybinds.ActionDecrement:
		m.stepFocused(-1)
	case keybinds.ActionIncrementL:
		m.stepFocused(LargeStep)
	case keybinds.ActionDecrementL:
		m.stepFocused(-LargeStep)
	case keybinds.ActionToggle:
		if f == fieldSubmit {
			return m.submit()
		}
		m.toggleFocused()
	case keybinds.ActionEditNumber:
		if name, ok := pairFields[f]; ok {
			m.mode = ModeNumberEdit
			m.editing = name
			m.numbers[name].Focus()
		}
	case keybinds.ActionFocusList:
		if m.app.Results().Len() > 0 {
			m.focusedPanel = panelResults
		}
	}
	return nil
}

// handleResultsKeys handles the result list
func (m *Model) handleResultsKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextResults, msg.String())
	if !ok {
		return nil
	}
	if cmd, handled := m.handleGlobalAction(action); handled {
		return cmd
	}

	switch action {
	case keybinds.ActionSelectUp:
		if m.resultIndex > 0 {
			m.resultIndex--
			m.updateResultsView()
		}
	case keybinds.ActionSelectDown:
		if m.resultIndex < m.app.Results().Len()-1 {
			m.resultIndex++
			m.updateResultsView()
		}
	case keybinds.ActionCopy:
		return m.copySelected()
	case keybinds.ActionFocusForm:
		m.focusedPanel = panelForm
	}
	return nil
}

// handleNumberEditKeys handles typing into a number field
func (m *Model) handleNumberEditKeys(msg tea.KeyMsg) tea.Cmd {
	pair := m.pairByName(m.editing)
	number := m.numbers[m.editing]
	if pair == nil || number == nil {
		m.finishEdit()
		return nil
	}

	action, ok := m.keybinds.Match(keybinds.ContextNumberEdit, msg.String())
	if ok {
		switch action {
		case keybinds.ActionCommit:
			raw := number.Value()
			m.finishEdit()
			pair.OnSecondaryChanged(raw)
			return nil
		case keybinds.ActionCancel:
			m.finishEdit()
			number.Show(pair.Value())
			return nil
		case keybinds.ActionQuitForce:
			m.Cleanup()
			return tea.Quit
		case keybinds.ActionSwitchTab:
			m.finishEdit()
			number.Show(pair.Value())
			m.app.Tabs().Next()
			m.afterTabChange()
			return nil
		}
	}

	return number.Update(msg)
}

// handleHelpKeys handles the help screen
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.Cleanup()
		return tea.Quit
	case "?", "q", "esc":
		m.mode = ModeNormal
		return nil
	case "up", "k":
		m.helpView.LineUp(1)
	case "down", "j":
		m.helpView.LineDown(1)
	case "pgup":
		m.helpView.HalfViewUp()
	case "pgdown":
		m.helpView.HalfViewDown()
	}
	return nil
}

func (m *Model) finishEdit() {
	if n, ok := m.numbers[m.editing]; ok {
		n.Blur()
	}
	m.editing = ""
	m.mode = ModeNormal
}

func (m *Model) stepFocused(delta int) {
	if pair, ok := m.pairFor(m.currentField()); ok {
		pair.Step(delta)
	}
}

func (m *Model) toggleFocused() {
	f := m.currentField()
	if c, ok := charTypeFields[f]; ok {
		m.app.ToggleCharType(c)
		return
	}
	switch f {
	case fieldCapitalize:
		m.app.SetCapitalize(!m.app.Capitalize())
	case fieldDashes:
		m.app.SetDashes(!m.app.Dashes())
	case fieldDigit:
		m.app.SetDigit(!m.app.Digit())
	}
}

func (m *Model) selectTab(id types.TabID) tea.Cmd {
	if err := m.app.SelectTab(id); err != nil {
		return m.setStatusMessage(err.Error())
	}
	m.afterTabChange()
	return nil
}

// afterTabChange resets focus for the newly active form
func (m *Model) afterTabChange() {
	m.fieldIndex = 0
	m.resultIndex = 0
	m.focusedPanel = panelForm
	m.updateResultsView()
}
