package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/snapgen/internal/orchestrator"
	"github.com/studiowebux/snapgen/internal/results"
)

// pollHealth issues one health request. The result is applied in Update.
func (m *Model) pollHealth() tea.Cmd {
	monitor := m.app.Health()
	ctx := m.ctx
	return func() tea.Msg {
		r := monitor.Poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return healthResultMsg{result: r}
	}
}

// scheduleHealthTick fires the next poll after the interval
func (m *Model) scheduleHealthTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

// submit starts a generation for the active tab. The network call runs as
// a command; its outcome comes back as generationDoneMsg.
func (m *Model) submit() tea.Cmd {
	call, err := m.app.Submit()
	if err != nil {
		if !errors.Is(err, orchestrator.ErrInFlight) {
			m.logger.Debug("submission rejected", "error", err)
		}
		m.updateResultsView()
		return nil
	}

	m.resultIndex = 0
	m.updateResultsView()

	ctx := m.ctx
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return generationDoneMsg{outcome: call(ctx)}
		},
	)
}

// copySelected copies the selected row and schedules the label reset
func (m *Model) copySelected() tea.Cmd {
	ack, err := m.app.Results().Copy(m.resultIndex)
	m.updateResultsView()
	if err != nil {
		m.logger.Warn("copy failed", "row", m.resultIndex, "error", err)
		return nil
	}
	return tea.Tick(results.CopyAckDuration, func(time.Time) tea.Msg {
		return copyResetMsg{ack: ack}
	})
}
