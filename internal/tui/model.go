package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/control"
	"github.com/studiowebux/snapgen/internal/health"
	"github.com/studiowebux/snapgen/internal/keybinds"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/orchestrator"
	"github.com/studiowebux/snapgen/internal/results"
	"github.com/studiowebux/snapgen/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal     Mode = iota
	ModeNumberEdit      // Typing into a number field
	ModeHelp
)

// Panels that can hold focus
const (
	panelForm    = "form"
	panelResults = "results"
)

// field is one focusable row of a form
type field int

const (
	fieldLength field = iota
	fieldCount
	fieldUppercase
	fieldLowercase
	fieldNumbers
	fieldSpecial
	fieldWordCount
	fieldCapitalize
	fieldDashes
	fieldDigit
	fieldSubmit
)

// formFields lists each tab's rows in display order
var formFields = map[types.TabID][]field{
	types.TabStrings:    {fieldLength, fieldCount, fieldUppercase, fieldLowercase, fieldNumbers, fieldSpecial, fieldSubmit},
	types.TabPassphrase: {fieldWordCount, fieldCapitalize, fieldDashes, fieldDigit, fieldSubmit},
}

// charTypeFields maps checkbox rows to their tags
var charTypeFields = map[field]types.CharType{
	fieldUppercase: types.CharUppercase,
	fieldLowercase: types.CharLowercase,
	fieldNumbers:   types.CharNumbers,
	fieldSpecial:   types.CharSpecial,
}

// pairFields maps slider rows to their pair names
var pairFields = map[field]string{
	fieldLength:    app.PairLength,
	fieldCount:     app.PairCount,
	fieldWordCount: app.PairWordCount,
}

// Model represents the TUI state
type Model struct {
	// Core state
	app      *app.App
	keybinds *keybinds.Registry
	logger   *slog.Logger
	closers  []io.Closer
	ctx      context.Context
	cancel   context.CancelFunc
	mode     Mode

	// Form
	focusedPanel string
	fieldIndex   int
	editing      string // Pair name while in ModeNumberEdit
	sliders      map[string]*Slider
	numbers      map[string]*NumberField

	// Results
	resultIndex int
	resultsView viewport.Model
	helpView    viewport.Model
	spinner     spinner.Model

	// Status
	statusMsg    string
	pollInterval time.Duration

	// Dimensions
	width  int
	height int
}

// Options configures a Model
type Options struct {
	App      app.Options
	Keybinds *keybinds.Registry
	// Closers are closed on quit (settings store, history database)
	Closers []io.Closer
}

// New creates a new TUI model. The application state is built here so the
// control pairs can be wired to this model's widgets.
func New(opts Options) Model {
	m := Model{
		keybinds:     opts.Keybinds,
		logger:       logging.OrDiscard(opts.App.Logger),
		closers:      opts.Closers,
		mode:         ModeNormal,
		focusedPanel: panelForm,
		sliders:      make(map[string]*Slider),
		numbers:      make(map[string]*NumberField),
		resultsView:  viewport.New(80, 10),
		helpView:     viewport.New(80, 20),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleWarning)),
	}
	if m.keybinds == nil {
		m.keybinds = keybinds.NewDefaultRegistry()
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	appOpts := opts.App
	appOpts.Widgets = func(name string) (control.Widget, control.Widget) {
		slider := &Slider{}
		number := NewNumberField(NumberFieldWidth)
		m.sliders[name] = slider
		m.numbers[name] = number
		return slider, number
	}
	m.app = app.New(appOpts)
	m.pollInterval = m.app.Health().Interval()

	return m
}

// Init starts health polling
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.pollHealth(), m.scheduleHealthTick())
}

// Cleanup stops pending work and closes databases
func (m *Model) Cleanup() {
	m.cancel()
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			m.logger.Error("error closing resource", "error", err)
		}
	}
	m.closers = nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case healthTickMsg:
		// Polls are never awaited; each tick issues a new one
		cmd = tea.Batch(m.pollHealth(), m.scheduleHealthTick())

	case healthResultMsg:
		m.app.ApplyHealth(msg.result)

	case generationDoneMsg:
		m.app.Complete(msg.outcome)
		m.resultIndex = 0
		m.updateResultsView()
		if m.app.Results().Len() > 0 {
			// Move focus to the results so they can be copied right away
			m.focusedPanel = panelResults
		}

	case copyResetMsg:
		m.app.Results().ResetCopy(msg.ack)
		m.updateResultsView()

	case clearStatusMsg:
		m.statusMsg = ""

	case spinner.TickMsg:
		if m.anyInFlight() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// Custom message types
type healthTickMsg struct{}

type healthResultMsg struct {
	result health.Result
}

type generationDoneMsg struct {
	outcome orchestrator.Outcome
}

type copyResetMsg struct {
	ack results.Ack
}

type clearStatusMsg struct{}

// setStatusMessage shows msg in the footer for StatusMessageTimeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = msg
	return tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// currentFields returns the rows of the active tab
func (m *Model) currentFields() []field {
	return formFields[m.app.ActiveTab()]
}

// currentField returns the focused row of the active tab
func (m *Model) currentField() field {
	fields := m.currentFields()
	if m.fieldIndex < 0 || m.fieldIndex >= len(fields) {
		m.fieldIndex = 0
	}
	return fields[m.fieldIndex]
}

// pairFor returns the control pair behind a slider row
func (m *Model) pairFor(f field) (*control.Pair, bool) {
	name, ok := pairFields[f]
	if !ok {
		return nil, false
	}
	return m.pairByName(name), true
}

func (m *Model) pairByName(name string) *control.Pair {
	switch name {
	case app.PairLength:
		return m.app.Length()
	case app.PairCount:
		return m.app.Count()
	case app.PairWordCount:
		return m.app.WordCount()
	}
	return nil
}

func (m *Model) anyInFlight() bool {
	for _, id := range types.AllTabs {
		if m.app.Orchestrator().ButtonDisabled(id) {
			return true
		}
	}
	return false
}

// updateViewport resizes viewports after a window change
func (m *Model) updateViewport() {
	w := m.width - ViewportPaddingHorizontal
	if w < 20 {
		w = 20
	}
	h := m.height - ResultsHeightOffset
	if h < 3 {
		h = 3
	}
	m.resultsView.Width = w
	m.resultsView.Height = h
	m.helpView.Width = w
	m.helpView.Height = m.height - HelpHeightOffset
	m.updateResultsView()
	m.helpView.SetContent(m.renderHelpContent())
}
