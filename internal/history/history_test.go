package history

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/snapgen/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "snapgen.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNewEntry(t *testing.T) {
	req := types.CharacterSetRequest{Length: 8, Count: 2, CharTypes: []types.CharType{types.CharNumbers}}
	e := NewEntry(req, StatusOK, 2, "", 150*time.Millisecond)

	if e.Kind != types.TabStrings {
		t.Errorf("Kind = %q", e.Kind)
	}
	if e.Params != `{"length":8,"count":2,"charTypes":["numbers"]}` {
		t.Errorf("Params = %s", e.Params)
	}
	if e.DurationMs != 150 {
		t.Errorf("DurationMs = %d", e.DurationMs)
	}
}

func TestManager_SaveLoad(t *testing.T) {
	m := newTestManager(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	entries := []Entry{
		{Timestamp: base, Kind: types.TabStrings, Params: "{}", ResultCount: 3, Status: StatusOK},
		{Timestamp: base.Add(time.Minute), Kind: types.TabPassphrase, Params: "{}", Status: StatusError, Error: "too long"},
		{Timestamp: base.Add(2 * time.Minute), Kind: types.TabStrings, Params: "{}", Status: StatusInvalid, Error: "Please select at least one character type"},
	}
	for _, e := range entries {
		if err := m.Save(e); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := m.Load(0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Load() returned %d entries", len(got))
	}
	if got[0].Status != StatusInvalid || got[2].ResultCount != 3 {
		t.Errorf("order wrong: %+v", got)
	}
	if got[1].Error != "too long" || got[0].ID == 0 {
		t.Errorf("entry = %+v", got[1])
	}
	if !got[2].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want %v", got[2].Timestamp, base)
	}

	limited, _ := m.Load(1)
	if len(limited) != 1 {
		t.Errorf("Load(1) returned %d", len(limited))
	}

	strs, _ := m.LoadKind(types.TabStrings, 0)
	if len(strs) != 2 {
		t.Errorf("LoadKind(strings) returned %d", len(strs))
	}
}

func TestManager_DeleteClearCount(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 3; i++ {
		m.Save(Entry{Kind: types.TabStrings, Params: "{}", Status: StatusOK})
	}

	entries, _ := m.Load(0)
	if err := m.Delete(entries[0].ID); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.GetCount(); n != 2 {
		t.Errorf("GetCount() = %d, want 2", n)
	}

	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.GetCount(); n != 0 {
		t.Errorf("GetCount() after Clear = %d", n)
	}
}

func TestManager_NeverStoresValues(t *testing.T) {
	m := newTestManager(t)
	req := types.PassphraseRequest{WordCount: 4, Capitalize: true}
	m.Save(NewEntry(req, StatusOK, 1, "", time.Millisecond))

	got, _ := m.Load(0)
	if strings.Contains(got[0].Params, "passphrase\"") {
		t.Errorf("params leaked a result field: %s", got[0].Params)
	}
}
