package orchestrator

import (
	"context"
	"errors"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/history"
	"github.com/studiowebux/snapgen/internal/mock"
	"github.com/studiowebux/snapgen/internal/results"
	"github.com/studiowebux/snapgen/internal/types"
)

type fakeGenerator struct {
	strs       []string
	passphrase string
	err        error
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, req types.CharacterSetRequest) ([]string, error) {
	f.calls++
	return f.strs, f.err
}

func (f *fakeGenerator) GeneratePassphrase(ctx context.Context, req types.PassphraseRequest) (string, error) {
	f.calls++
	return f.passphrase, f.err
}

type fakeRecorder struct {
	entries []history.Entry
}

func (f *fakeRecorder) Save(e history.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

type nopClipboard struct{}

func (nopClipboard) WriteAll(string) error { return nil }

func newTestOrchestrator(gen Generator) (*Orchestrator, *results.Renderer, *fakeRecorder) {
	r := results.NewRenderer(nopClipboard{})
	rec := &fakeRecorder{}
	return New(gen, r, rec, nil), r, rec
}

var validStrings = types.CharacterSetRequest{Length: 3, Count: 2, CharTypes: []types.CharType{types.CharLowercase}}

func TestSubmit_NoCharTypesNeverCallsService(t *testing.T) {
	gen := &fakeGenerator{strs: []string{"x"}}
	o, r, rec := newTestOrchestrator(gen)
	r.Render("Generated Strings", []string{"old"})

	call, err := o.Submit(types.CharacterSetRequest{Length: 8, Count: 1, CharTypes: []types.CharType{}})
	if !errors.Is(err, ErrNoCharacterType) || call != nil {
		t.Fatalf("Submit() = %v, %v", call, err)
	}
	if gen.calls != 0 {
		t.Errorf("service called %d times", gen.calls)
	}
	if r.Error() != MsgNoCharType || r.Len() != 0 {
		t.Errorf("error = %q, rows = %d", r.Error(), r.Len())
	}
	if o.ButtonDisabled(types.TabStrings) {
		t.Error("validation failure left the button disabled")
	}
	if len(rec.entries) != 1 || rec.entries[0].Status != history.StatusInvalid {
		t.Errorf("history = %+v", rec.entries)
	}
}

func TestRun_StringsSuccess(t *testing.T) {
	gen := &fakeGenerator{strs: []string{"abc", "def"}}
	o, r, rec := newTestOrchestrator(gen)

	if _, err := o.Run(context.Background(), validStrings); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Title() != TitleStrings {
		t.Errorf("Title() = %q", r.Title())
	}
	if got := r.Strings(); !reflect.DeepEqual(got, []string{"abc", "def"}) {
		t.Errorf("Strings() = %v", got)
	}
	if rec.entries[0].Status != history.StatusOK || rec.entries[0].ResultCount != 2 {
		t.Errorf("history = %+v", rec.entries[0])
	}
}

func TestRun_PassphraseSingleRow(t *testing.T) {
	gen := &fakeGenerator{passphrase: "correct-horse-battery"}
	o, r, _ := newTestOrchestrator(gen)

	if _, err := o.Run(context.Background(), types.PassphraseRequest{WordCount: 3}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Title() != TitlePassphrase || !reflect.DeepEqual(r.Strings(), []string{"correct-horse-battery"}) {
		t.Errorf("title = %q, strings = %v", r.Title(), r.Strings())
	}
}

func TestRun_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		req  types.GenerationRequest
		err  error
		want string
	}{
		{"payload message", validStrings, &client.APIError{StatusCode: 400, Message: "too long"}, "too long"},
		{"strings fallback", validStrings, &client.APIError{StatusCode: 500}, MsgStringsFallback},
		{"passphrase fallback", types.PassphraseRequest{WordCount: 4}, &client.APIError{StatusCode: 500}, MsgPassphraseFallback},
		{"malformed", validStrings, client.ErrMalformedResponse, MsgStringsFallback},
		{"transport", validStrings, context.DeadlineExceeded, "Request timeout - the service did not answer in time, try increasing request_timeout in config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, r, rec := newTestOrchestrator(&fakeGenerator{err: tt.err})
			r.Render("Generated Strings", []string{"stale"})

			if _, err := o.Run(context.Background(), tt.req); err == nil {
				t.Fatal("Run() should return the request error")
			}
			if r.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", r.Error(), tt.want)
			}
			if r.Len() != 0 || r.Visible() {
				t.Errorf("rows = %d, want 0", r.Len())
			}
			if o.ButtonDisabled(tt.req.Form()) {
				t.Error("button left disabled after error")
			}
			if rec.entries[0].Status != history.StatusError || rec.entries[0].Error != tt.want {
				t.Errorf("history = %+v", rec.entries[0])
			}
		})
	}
}

func TestButtonState_DisabledOnlyWhileInFlight(t *testing.T) {
	o, _, _ := newTestOrchestrator(&fakeGenerator{strs: []string{"a"}})

	if o.ButtonDisabled(types.TabStrings) || o.ButtonLabel(types.TabStrings) != LabelGenerateStrings {
		t.Fatalf("initial: disabled=%v label=%q", o.ButtonDisabled(types.TabStrings), o.ButtonLabel(types.TabStrings))
	}

	call, err := o.Submit(validStrings)
	if err != nil {
		t.Fatal(err)
	}
	if !o.ButtonDisabled(types.TabStrings) || o.ButtonLabel(types.TabStrings) != LabelGenerating {
		t.Errorf("in flight: disabled=%v label=%q", o.ButtonDisabled(types.TabStrings), o.ButtonLabel(types.TabStrings))
	}
	if o.ButtonDisabled(types.TabPassphrase) || o.ButtonLabel(types.TabPassphrase) != LabelGeneratePassphrase {
		t.Error("other form affected by in-flight request")
	}

	if _, err := o.Submit(validStrings); !errors.Is(err, ErrInFlight) {
		t.Errorf("second Submit() error = %v, want ErrInFlight", err)
	}

	o.Complete(call(context.Background()))
	if o.ButtonDisabled(types.TabStrings) || o.State(types.TabStrings) != Idle {
		t.Error("button still disabled after completion")
	}
	if o.ButtonLabel(types.TabStrings) != LabelGenerateStrings {
		t.Errorf("label = %q", o.ButtonLabel(types.TabStrings))
	}
}

func TestSubmit_InFlightRejectionLeavesDisplay(t *testing.T) {
	o, r, _ := newTestOrchestrator(&fakeGenerator{strs: []string{"a"}})
	call, _ := o.Submit(validStrings)
	r.ShowError("still here")

	o.Submit(validStrings)
	if r.Error() != "still here" {
		t.Error("rejected submit cleared the display")
	}
	o.Complete(call(context.Background()))
}

func TestRun_AgainstMockService(t *testing.T) {
	srv := mock.NewServer(&mock.Config{Routes: []mock.Route{
		{Method: "POST", Path: client.PathGenerate, Body: `{"strings":["abc","def"]}`},
		{Method: "POST", Path: client.PathPassphrase, Status: 400, Body: `{"error":"too long"}`},
	}}, t.TempDir(), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c, err := client.New(client.Options{BaseURL: ts.URL})
	if err != nil {
		t.Fatal(err)
	}
	o, r, _ := newTestOrchestrator(c)

	o.Run(context.Background(), validStrings)
	if r.Title() != TitleStrings || r.Len() != 2 {
		t.Errorf("strings: title = %q, rows = %d", r.Title(), r.Len())
	}

	o.Run(context.Background(), types.PassphraseRequest{WordCount: 20})
	if r.Error() != "too long" || r.Len() != 0 {
		t.Errorf("passphrase: error = %q, rows = %d", r.Error(), r.Len())
	}
}

func TestSettle_ReturnsToIdleWithoutRendering(t *testing.T) {
	gen := &fakeGenerator{strs: []string{"abc"}}
	o, r, rec := newTestOrchestrator(gen)

	call, err := o.Submit(validStrings)
	if err != nil {
		t.Fatal(err)
	}
	out := call(context.Background())
	o.Settle(out)

	if o.State(types.TabStrings) != Idle {
		t.Error("Settle() left the form in flight")
	}
	if r.Visible() || r.Error() != "" {
		t.Error("Settle() touched the display")
	}
	if len(rec.entries) != 1 || rec.entries[0].Status != history.StatusOK {
		t.Errorf("history = %+v", rec.entries)
	}
}
