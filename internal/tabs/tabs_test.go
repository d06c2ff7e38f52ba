package tabs

import (
	"errors"
	"testing"

	"github.com/studiowebux/snapgen/internal/settings"
	"github.com/studiowebux/snapgen/internal/types"
)

func activeCount(c *Controller) int {
	n := 0
	for _, id := range types.AllTabs {
		if c.IsActive(id) {
			n++
		}
	}
	return n
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   types.TabID
	}{
		{"absent", "", types.TabStrings},
		{"passphrase", "passphrase", types.TabPassphrase},
		{"unknown", "settings", types.TabStrings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := settings.NewMemory()
			if tt.stored != "" {
				kv.Save(settings.KeyActiveTab, tt.stored)
			}
			cleared := 0
			c := New(kv, func() { cleared++ }, nil)

			if got := c.Restore(); got != tt.want {
				t.Errorf("Restore() = %q, want %q", got, tt.want)
			}
			if cleared != 0 {
				t.Error("Restore() must not clear output")
			}
			if activeCount(c) != 1 {
				t.Errorf("active tabs = %d", activeCount(c))
			}
		})
	}
}

func TestSelect(t *testing.T) {
	kv := settings.NewMemory()
	cleared := 0
	c := New(kv, func() { cleared++ }, nil)
	c.Restore()

	for i, id := range []types.TabID{types.TabPassphrase, types.TabStrings, types.TabStrings} {
		if err := c.Select(id); err != nil {
			t.Fatalf("Select(%q) error = %v", id, err)
		}
		if !c.IsActive(id) || activeCount(c) != 1 {
			t.Errorf("after Select(%q): active = %q, count = %d", id, c.Active(), activeCount(c))
		}
		if cleared != i+1 {
			t.Errorf("cleared = %d, want %d", cleared, i+1)
		}
		if stored, _ := settings.LoadTab(kv, settings.KeyActiveTab); stored != id {
			t.Errorf("persisted = %q, want %q", stored, id)
		}
	}
}

func TestSelect_UnknownChangesNothing(t *testing.T) {
	kv := settings.NewMemory()
	cleared := 0
	c := New(kv, func() { cleared++ }, nil)
	c.Select(types.TabPassphrase)
	cleared = 0

	err := c.Select("history")
	if !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("error = %v, want ErrUnknownTab", err)
	}
	if c.Active() != types.TabPassphrase || cleared != 0 {
		t.Errorf("active = %q, cleared = %d", c.Active(), cleared)
	}
}

func TestSelect_PersistFailureStillSwitches(t *testing.T) {
	kv := settings.NewMemory()
	kv.FailSaves = true
	c := New(kv, nil, nil)

	if err := c.Select(types.TabPassphrase); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if c.Active() != types.TabPassphrase {
		t.Errorf("Active() = %q", c.Active())
	}
}

func TestNext_Wraps(t *testing.T) {
	c := New(settings.NewMemory(), nil, nil)
	if got := c.Next(); got != types.TabPassphrase {
		t.Errorf("Next() = %q", got)
	}
	if got := c.Next(); got != types.TabStrings {
		t.Errorf("Next() = %q", got)
	}
}
