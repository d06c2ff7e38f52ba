package settings

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/studiowebux/snapgen/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapgen.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stores runs fn against both KV implementations
func stores(t *testing.T, fn func(t *testing.T, kv KV)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openTestStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
}

func TestLoad_AbsentKey(t *testing.T) {
	stores(t, func(t *testing.T, kv KV) {
		if v, ok := kv.Load(KeyStringLength); ok {
			t.Errorf("Load() = %q, true; want absent", v)
		}
	})
}

func TestSave_Overwrites(t *testing.T) {
	stores(t, func(t *testing.T, kv KV) {
		if err := kv.Save(KeyStringLength, "16"); err != nil {
			t.Fatal(err)
		}
		if err := kv.Save(KeyStringLength, "32"); err != nil {
			t.Fatal(err)
		}
		v, ok := kv.Load(KeyStringLength)
		if !ok || v != "32" {
			t.Errorf("Load() = %q, %v; want 32, true", v, ok)
		}
	})
}

func TestTypedRoundTrip(t *testing.T) {
	stores(t, func(t *testing.T, kv KV) {
		if err := SaveInt(kv, KeyStringCount, 7); err != nil {
			t.Fatal(err)
		}
		if v, ok := LoadInt(kv, KeyStringCount); !ok || v != 7 {
			t.Errorf("LoadInt() = %d, %v", v, ok)
		}

		for _, b := range []bool{true, false} {
			if err := SaveBool(kv, KeyAddDigit, b); err != nil {
				t.Fatal(err)
			}
			if v, ok := LoadBool(kv, KeyAddDigit); !ok || v != b {
				t.Errorf("LoadBool() = %v, %v; want %v", v, ok, b)
			}
		}

		if err := SaveTab(kv, KeyActiveTab, types.TabPassphrase); err != nil {
			t.Fatal(err)
		}
		if v, ok := LoadTab(kv, KeyActiveTab); !ok || v != types.TabPassphrase {
			t.Errorf("LoadTab() = %q, %v", v, ok)
		}
	})
}

func TestCharTypes(t *testing.T) {
	tests := []struct {
		name string
		in   []types.CharType
		want []types.CharType
	}{
		{"empty", []types.CharType{}, []types.CharType{}},
		{"canonical", []types.CharType{types.CharUppercase, types.CharNumbers}, []types.CharType{types.CharUppercase, types.CharNumbers}},
		{"reordered", []types.CharType{types.CharSpecial, types.CharLowercase}, []types.CharType{types.CharLowercase, types.CharSpecial}},
		{"duplicates", []types.CharType{types.CharNumbers, types.CharNumbers}, []types.CharType{types.CharNumbers}},
		{"all", types.AllCharTypes, types.AllCharTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemory()
			if err := SaveCharTypes(kv, KeyCharTypes, tt.in); err != nil {
				t.Fatal(err)
			}
			got, ok := LoadCharTypes(kv, KeyCharTypes)
			if !ok {
				t.Fatal("LoadCharTypes() reported absent")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadCharTypes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorruptValuesLoadAsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		raw   string
		check func(kv KV) bool
	}{
		{"int not a number", KeyStringLength, "sixteen", func(kv KV) bool { _, ok := LoadInt(kv, KeyStringLength); return ok }},
		{"bool yes", KeyAddDigit, "yes", func(kv KV) bool { _, ok := LoadBool(kv, KeyAddDigit); return ok }},
		{"tab unknown", KeyActiveTab, "uuid", func(kv KV) bool { _, ok := LoadTab(kv, KeyActiveTab); return ok }},
		{"chartypes not json", KeyCharTypes, "uppercase,lowercase", func(kv KV) bool { _, ok := LoadCharTypes(kv, KeyCharTypes); return ok }},
		{"chartypes unknown tag", KeyCharTypes, `["uppercase","emoji"]`, func(kv KV) bool { _, ok := LoadCharTypes(kv, KeyCharTypes); return ok }},
		{"chartypes null", KeyCharTypes, "null", func(kv KV) bool { _, ok := LoadCharTypes(kv, KeyCharTypes); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemory()
			if err := kv.Save(tt.key, tt.raw); err != nil {
				t.Fatal(err)
			}
			if tt.check(kv) {
				t.Errorf("%q loaded as present", tt.raw)
			}
		})
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapgen.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveInt(s, KeyWordCount, 6); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if v, ok := LoadInt(s, KeyWordCount); !ok || v != 6 {
		t.Errorf("LoadInt() after reopen = %d, %v", v, ok)
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if all[KeyWordCount] != "6" {
		t.Errorf("All() = %v", all)
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Load(KeyWordCount); ok {
		t.Error("Reset() left values behind")
	}
}

func TestMemory_FailSaves(t *testing.T) {
	kv := NewMemory()
	kv.FailSaves = true
	if err := kv.Save(KeyStringLength, "1"); err != ErrReadOnly {
		t.Errorf("Save() error = %v, want ErrReadOnly", err)
	}
}
