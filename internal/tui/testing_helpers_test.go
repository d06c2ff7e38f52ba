package tui

import (
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/mock"
	"github.com/studiowebux/snapgen/internal/settings"
)

// fakeClipboard records what was copied
type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

// testEnv is a model wired to a mock service and in-memory settings
type testEnv struct {
	model   *Model
	kv      *settings.Memory
	clip    *fakeClipboard
	service *mock.Server
}

// CreateTestModel creates a Model backed by the mock service handler
func CreateTestModel(t *testing.T) *testEnv {
	t.Helper()

	srv := mock.NewServer(mock.DefaultConfig(), t.TempDir(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := client.New(client.Options{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	env := &testEnv{kv: settings.NewMemory(), clip: &fakeClipboard{}, service: srv}
	m := New(Options{App: app.Options{Settings: env.kv, Service: c, Clipboard: env.clip}})
	t.Cleanup(m.Cleanup)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	env.model = &m
	return env
}

// press sends keys and runs the commands they return. Only use it for keys
// whose commands finish immediately.
func (e *testEnv) press(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		_, cmd := e.model.Update(k)
		e.run(cmd)
	}
}

// run executes cmd and feeds its messages back into the model. Timers are
// not run: tick commands would block the test.
func (e *testEnv) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			e.run(c)
		}
	case nil, tea.QuitMsg:
	default:
		e.model.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
