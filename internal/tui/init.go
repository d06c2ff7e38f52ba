package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	m := New(opts)
	defer m.Cleanup()

	// Start TUI (pass pointer since Update uses pointer receiver)
	// Note: Mouse is disabled by default in bubbletea
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
