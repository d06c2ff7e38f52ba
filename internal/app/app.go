package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/studiowebux/snapgen/internal/control"
	"github.com/studiowebux/snapgen/internal/health"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/orchestrator"
	"github.com/studiowebux/snapgen/internal/results"
	"github.com/studiowebux/snapgen/internal/settings"
	"github.com/studiowebux/snapgen/internal/tabs"
	"github.com/studiowebux/snapgen/internal/types"
)

// Pair names
const (
	PairLength    = "length"
	PairCount     = "count"
	PairWordCount = "wordCount"
)

// Bounds and defaults of the numeric fields
const (
	LengthMin     = 1
	LengthMax     = 256
	LengthDefault = 16

	CountMin     = 1
	CountMax     = health.DefaultCeiling
	CountDefault = 1

	WordCountMin     = 3
	WordCountMax     = 12
	WordCountDefault = 4

	CapitalizeDefault = true
	DashesDefault     = false
	DigitDefault      = false
)

// Service is the remote generation service
type Service interface {
	orchestrator.Generator
	health.Checker
}

// WidgetFactory returns the two widgets of a named pair. Either may be nil.
type WidgetFactory func(name string) (primary, secondary control.Widget)

// Options configures an App
type Options struct {
	// Settings persists preferences. Nil keeps them in memory.
	Settings settings.KV
	Service  Service
	// Clipboard backs result copying. Nil uses the system clipboard.
	Clipboard results.Clipboard
	// History records submissions. May be nil.
	History orchestrator.Recorder

	HealthInterval     time.Duration
	DiscardStaleHealth bool

	Widgets WidgetFactory
	Logger  *slog.Logger
}

// App owns one instance of every component and the flag fields. Each field
// is mutated only by its owner; everything else reads through accessors.
// App is not safe for concurrent use.
type App struct {
	kv     settings.KV
	logger *slog.Logger

	length    *control.Pair
	count     *control.Pair
	wordCount *control.Pair

	tabs    *tabs.Controller
	results *results.Renderer
	orch    *orchestrator.Orchestrator
	monitor *health.Monitor

	charTypes  []types.CharType
	capitalize bool
	dashes     bool
	digit      bool
}

// New builds the application state and restores every persisted preference
func New(opts Options) *App {
	a := &App{
		kv:     opts.Settings,
		logger: logging.OrDiscard(opts.Logger),
	}
	if a.kv == nil {
		a.kv = settings.NewMemory()
	}

	a.length = a.newPair(opts.Widgets, PairLength, settings.KeyStringLength, LengthMin, LengthMax, LengthDefault)
	a.count = a.newPair(opts.Widgets, PairCount, settings.KeyStringCount, CountMin, CountMax, CountDefault)
	a.wordCount = a.newPair(opts.Widgets, PairWordCount, settings.KeyWordCount, WordCountMin, WordCountMax, WordCountDefault)

	a.restoreFlags()

	a.results = results.NewRenderer(opts.Clipboard)
	a.tabs = tabs.New(a.kv, a.results.Clear, a.logger)
	a.tabs.Restore()

	a.orch = orchestrator.New(opts.Service, a.results, opts.History, a.logger)
	a.monitor = health.New(opts.Service, health.Options{
		Interval:     opts.HealthInterval,
		Ceiling:      CountMax,
		DiscardStale: opts.DiscardStaleHealth,
		Bound:        a.count.SetBound,
		Logger:       a.logger,
	})

	return a
}

func (a *App) newPair(widgets WidgetFactory, name, key string, min, max, def int) *control.Pair {
	var primary, secondary control.Widget
	if widgets != nil {
		primary, secondary = widgets(name)
	}
	initial, ok := settings.LoadInt(a.kv, key)
	if !ok {
		initial = def
	}
	p := control.NewPair(name, primary, secondary, min, max, initial)
	p.OnChange(func(v int) {
		if err := settings.SaveInt(a.kv, key, v); err != nil {
			a.logger.Warn("failed to persist setting", "key", key, "error", err)
		}
	})
	return p
}

func (a *App) restoreFlags() {
	if set, ok := settings.LoadCharTypes(a.kv, settings.KeyCharTypes); ok {
		a.charTypes = set
	} else {
		a.charTypes = append([]types.CharType(nil), types.DefaultCharTypes...)
	}
	a.capitalize = loadBool(a.kv, settings.KeyCapitalizeWords, CapitalizeDefault)
	a.dashes = loadBool(a.kv, settings.KeySeparateWithDashes, DashesDefault)
	a.digit = loadBool(a.kv, settings.KeyAddDigit, DigitDefault)
}

func loadBool(kv settings.KV, key string, def bool) bool {
	if v, ok := settings.LoadBool(kv, key); ok {
		return v
	}
	return def
}

// Length is the string length pair
func (a *App) Length() *control.Pair { return a.length }

// Count is the string count pair, bounded by health
func (a *App) Count() *control.Pair { return a.count }

// WordCount is the passphrase word count pair
func (a *App) WordCount() *control.Pair { return a.wordCount }

// Tabs is the tab controller
func (a *App) Tabs() *tabs.Controller { return a.tabs }

// Results is the results renderer
func (a *App) Results() *results.Renderer { return a.results }

// Orchestrator sequences submissions
func (a *App) Orchestrator() *orchestrator.Orchestrator { return a.orch }

// Health is the health monitor
func (a *App) Health() *health.Monitor { return a.monitor }

// Settings is the preference store
func (a *App) Settings() settings.KV { return a.kv }

// CharTypes returns a copy of the selected character types, in canonical order
func (a *App) CharTypes() []types.CharType {
	return append([]types.CharType(nil), a.charTypes...)
}

// HasCharType reports whether c is selected
func (a *App) HasCharType(c types.CharType) bool {
	return types.ContainsCharType(a.charTypes, c)
}

// SetCharTypes replaces the selection and persists it. An empty selection is
// allowed; submitting it fails validation.
func (a *App) SetCharTypes(set []types.CharType) {
	a.charTypes = types.NormalizeCharTypes(set)
	a.persist(settings.KeyCharTypes, settings.SaveCharTypes(a.kv, settings.KeyCharTypes, a.charTypes))
}

// ToggleCharType flips c in the selection
func (a *App) ToggleCharType(c types.CharType) {
	if a.HasCharType(c) {
		next := make([]types.CharType, 0, len(a.charTypes))
		for _, t := range a.charTypes {
			if t != c {
				next = append(next, t)
			}
		}
		a.SetCharTypes(next)
		return
	}
	a.SetCharTypes(append(a.CharTypes(), c))
}

// Capitalize reports whether passphrase words are capitalized
func (a *App) Capitalize() bool { return a.capitalize }

// Dashes reports whether passphrase words are dash separated
func (a *App) Dashes() bool { return a.dashes }

// Digit reports whether a digit is appended to the passphrase
func (a *App) Digit() bool { return a.digit }

// SetCapitalize sets and persists the capitalize flag
func (a *App) SetCapitalize(v bool) {
	a.capitalize = v
	a.persist(settings.KeyCapitalizeWords, settings.SaveBool(a.kv, settings.KeyCapitalizeWords, v))
}

// SetDashes sets and persists the dash separator flag
func (a *App) SetDashes(v bool) {
	a.dashes = v
	a.persist(settings.KeySeparateWithDashes, settings.SaveBool(a.kv, settings.KeySeparateWithDashes, v))
}

// SetDigit sets and persists the trailing digit flag
func (a *App) SetDigit(v bool) {
	a.digit = v
	a.persist(settings.KeyAddDigit, settings.SaveBool(a.kv, settings.KeyAddDigit, v))
}

func (a *App) persist(key string, err error) {
	if err != nil {
		a.logger.Warn("failed to persist setting", "key", key, "error", err)
	}
}

// ActiveTab returns the active tab
func (a *App) ActiveTab() types.TabID { return a.tabs.Active() }

// SelectTab activates id, clearing displayed output
func (a *App) SelectTab(id types.TabID) error { return a.tabs.Select(id) }

// Request builds the request variant of form from the current field values
func (a *App) Request(form types.TabID) types.GenerationRequest {
	if form == types.TabPassphrase {
		return types.PassphraseRequest{
			WordCount:     a.wordCount.Value(),
			Capitalize:    a.capitalize,
			DashSeparated: a.dashes,
			AppendDigit:   a.digit,
		}
	}
	return types.CharacterSetRequest{
		Length:    a.length.Value(),
		Count:     a.count.Value(),
		CharTypes: a.CharTypes(),
	}
}

// CurrentRequest builds the request of the active tab
func (a *App) CurrentRequest() types.GenerationRequest {
	return a.Request(a.tabs.Active())
}

// Submit starts a submission of the active tab. See orchestrator.Submit.
func (a *App) Submit() (orchestrator.Call, error) {
	return a.orch.Submit(a.CurrentRequest())
}

// Complete applies a finished generation. An outcome for a form whose tab
// is no longer active settles without being rendered.
func (a *App) Complete(out orchestrator.Outcome) {
	if out.Request != nil && out.Request.Form() != a.tabs.Active() {
		a.orch.Settle(out)
		return
	}
	a.orch.Complete(out)
}

// Generate submits the active tab and waits for the outcome
func (a *App) Generate(ctx context.Context) (orchestrator.Outcome, error) {
	return a.orch.Run(ctx, a.CurrentRequest())
}

// ApplyHealth folds a completed poll into the status line and count bound
func (a *App) ApplyHealth(r health.Result) bool { return a.monitor.Apply(r) }
