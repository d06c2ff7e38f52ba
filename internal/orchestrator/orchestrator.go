package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/history"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/types"
)

// User-facing texts
const (
	MsgNoCharType           = "Please select at least one character type"
	MsgStringsFallback      = "Failed to generate strings"
	MsgPassphraseFallback   = "Failed to generate passphrase"
	TitleStrings            = "Generated Strings"
	TitlePassphrase         = "Generated Passphrase"
	LabelGenerateStrings    = "Generate Random Strings"
	LabelGeneratePassphrase = "Generate Passphrase"
	LabelGenerating         = "Generating..."
)

var (
	// ErrNoCharacterType is the validation failure for an empty selection
	ErrNoCharacterType = errors.New(MsgNoCharType)
	// ErrInFlight is returned when a form already has a request outstanding
	ErrInFlight = errors.New("a request is already in flight for this form")
	// ErrUnsupportedRequest is returned for request variants with no endpoint
	ErrUnsupportedRequest = errors.New("unsupported request variant")
)

// RequestState tracks one form's submit control
type RequestState int

const (
	Idle RequestState = iota
	InFlight
)

func (s RequestState) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Generator calls the generation endpoints
type Generator interface {
	Generate(ctx context.Context, req types.CharacterSetRequest) ([]string, error)
	GeneratePassphrase(ctx context.Context, req types.PassphraseRequest) (string, error)
}

// Display is the result panel and its inline error channel
type Display interface {
	Clear()
	ShowError(msg string)
	Render(title string, strs []string)
}

// Recorder stores submission outcomes
type Recorder interface {
	Save(entry history.Entry) error
}

// Outcome is the resolution of one issued request
type Outcome struct {
	Request  types.GenerationRequest
	Strings  []string
	Err      error
	Duration time.Duration
}

// Call performs an issued request. It touches no orchestrator state and may
// run on any goroutine; its Outcome must be handed back to Complete.
type Call func(ctx context.Context) Outcome

// Orchestrator sequences submissions: clear, validate, mark in flight,
// issue, then render or surface the error and return to idle
type Orchestrator struct {
	gen      Generator
	display  Display
	recorder Recorder
	logger   *slog.Logger
	states   map[types.TabID]RequestState
}

// New returns an orchestrator with every form idle. recorder may be nil.
func New(gen Generator, display Display, recorder Recorder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gen:      gen,
		display:  display,
		recorder: recorder,
		logger:   logging.OrDiscard(logger),
		states:   make(map[types.TabID]RequestState),
	}
}

// State returns the request state of a form
func (o *Orchestrator) State(form types.TabID) RequestState {
	return o.states[form]
}

// ButtonDisabled reports whether the form's submit control is disabled
func (o *Orchestrator) ButtonDisabled(form types.TabID) bool {
	return o.states[form] == InFlight
}

// ButtonLabel returns the form's submit caption
func (o *Orchestrator) ButtonLabel(form types.TabID) string {
	if o.states[form] == InFlight {
		return LabelGenerating
	}
	if form == types.TabPassphrase {
		return LabelGeneratePassphrase
	}
	return LabelGenerateStrings
}

// Submit runs the synchronous half of a submission. On success the form is
// in flight and the returned Call must be run and its Outcome passed to
// Complete. A validation failure is shown inline and no Call is returned.
func (o *Orchestrator) Submit(req types.GenerationRequest) (Call, error) {
	if req == nil {
		return nil, ErrUnsupportedRequest
	}
	form := req.Form()
	if o.states[form] == InFlight {
		return nil, ErrInFlight
	}

	o.display.Clear()

	if err := validate(req); err != nil {
		o.display.ShowError(err.Error())
		o.record(req, history.StatusInvalid, 0, err.Error(), 0)
		return nil, err
	}

	o.states[form] = InFlight
	o.logger.Debug("request issued", "form", form)

	gen := o.gen
	return func(ctx context.Context) Outcome {
		start := time.Now()
		out := Outcome{Request: req}
		switch r := req.(type) {
		case types.CharacterSetRequest:
			out.Strings, out.Err = gen.Generate(ctx, r)
		case types.PassphraseRequest:
			var p string
			p, out.Err = gen.GeneratePassphrase(ctx, r)
			if out.Err == nil {
				out.Strings = []string{p}
			}
		default:
			out.Err = fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
		}
		out.Duration = time.Since(start)
		return out
	}, nil
}

// Complete applies an Outcome and always returns its form to idle
func (o *Orchestrator) Complete(out Outcome) {
	o.complete(out, true)
}

// Settle is Complete for a form whose panel is no longer shown: the form
// returns to idle and the outcome is recorded, the display is left alone
func (o *Orchestrator) Settle(out Outcome) {
	o.complete(out, false)
}

func (o *Orchestrator) complete(out Outcome, show bool) {
	if out.Request == nil {
		return
	}
	form := out.Request.Form()
	defer func() { o.states[form] = Idle }()

	if out.Err != nil {
		msg := ErrorMessage(form, out.Err)
		if show {
			o.display.ShowError(msg)
		}
		o.logger.Warn("generation failed", "form", form, "error", out.Err)
		o.record(out.Request, history.StatusError, 0, msg, out.Duration)
		return
	}

	if show {
		o.display.Render(Title(form), out.Strings)
	}
	o.logger.Info("generation completed", "form", form, "count", len(out.Strings), "duration", out.Duration)
	o.record(out.Request, history.StatusOK, len(out.Strings), "", out.Duration)
}

// Run submits, issues and completes in one call
func (o *Orchestrator) Run(ctx context.Context, req types.GenerationRequest) (Outcome, error) {
	call, err := o.Submit(req)
	if err != nil {
		return Outcome{Request: req, Err: err}, err
	}
	out := call(ctx)
	o.Complete(out)
	return out, out.Err
}

// Title returns the results title for a form
func Title(form types.TabID) string {
	if form == types.TabPassphrase {
		return TitlePassphrase
	}
	return TitleStrings
}

// Fallback returns the generic failure message for a form
func Fallback(form types.TabID) string {
	if form == types.TabPassphrase {
		return MsgPassphraseFallback
	}
	return MsgStringsFallback
}

// ErrorMessage maps a request failure to the inline error text: the
// service's own message when it sent one, a categorized transport message
// when the request never got an answer, the form's fallback otherwise
func ErrorMessage(form types.TabID, err error) string {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return Fallback(form)
	case errors.Is(err, client.ErrMalformedResponse), errors.Is(err, ErrUnsupportedRequest):
		return Fallback(form)
	}
	if msg := client.Categorize(err); msg != "" {
		return msg
	}
	return Fallback(form)
}

func validate(req types.GenerationRequest) error {
	switch r := req.(type) {
	case types.CharacterSetRequest:
		if len(types.NormalizeCharTypes(r.CharTypes)) == 0 {
			return ErrNoCharacterType
		}
	case types.PassphraseRequest:
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
	return nil
}

func (o *Orchestrator) record(req types.GenerationRequest, status string, count int, errMsg string, d time.Duration) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Save(history.NewEntry(req, status, count, errMsg, d)); err != nil {
		o.logger.Warn("failed to record history", "error", err)
	}
}
