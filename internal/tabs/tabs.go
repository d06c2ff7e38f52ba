package tabs

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/settings"
	"github.com/studiowebux/snapgen/internal/types"
)

// ErrUnknownTab is returned when selecting a tab that does not exist
var ErrUnknownTab = errors.New("unknown tab")

// Controller owns the active tab. Exactly one tab is active at all times.
type Controller struct {
	kv     settings.KV
	clear  func()
	logger *slog.Logger
	active types.TabID
}

// New returns a controller with the default tab active. clear is called
// whenever a selection should wipe displayed results and errors.
func New(kv settings.KV, clear func(), logger *slog.Logger) *Controller {
	return &Controller{
		kv:     kv,
		clear:  clear,
		logger: logging.OrDiscard(logger),
		active: types.DefaultTab,
	}
}

// Restore activates the persisted tab, or the default one. Nothing is cleared.
func (c *Controller) Restore() types.TabID {
	id, ok := settings.LoadTab(c.kv, settings.KeyActiveTab)
	if !ok {
		id = types.DefaultTab
	}
	c.active = id
	return id
}

// Select activates id, clears displayed output and persists the choice
func (c *Controller) Select(id types.TabID) error {
	if _, ok := types.ParseTabID(string(id)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTab, id)
	}
	c.active = id
	if c.clear != nil {
		c.clear()
	}
	if err := settings.SaveTab(c.kv, settings.KeyActiveTab, id); err != nil {
		c.logger.Warn("failed to persist active tab", "tab", id, "error", err)
	}
	return nil
}

// Next selects the tab after the active one, wrapping around
func (c *Controller) Next() types.TabID {
	for i, id := range types.AllTabs {
		if id == c.active {
			next := types.AllTabs[(i+1)%len(types.AllTabs)]
			c.Select(next)
			return next
		}
	}
	c.Select(types.DefaultTab)
	return types.DefaultTab
}

// Active returns the active tab
func (c *Controller) Active() types.TabID { return c.active }

// IsActive reports whether id is the active tab
func (c *Controller) IsActive(id types.TabID) bool { return c.active == id }
