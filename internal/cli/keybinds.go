package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/studiowebux/snapgen/internal/keybinds"
)

// Keybinds writes the default keybinding file with init, otherwise validates
// the user's file and lists the effective bindings
func Keybinds(path string, init bool, out io.Writer) error {
	if init {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote default keybindings to %s\n", path)
		return nil
	}

	registry := keybinds.NewDefaultRegistry()
	cfg, err := keybinds.LoadConfig(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(out, "No keybinds file at %s, using defaults\n", path)
	case err != nil:
		return err
	default:
		if err := keybinds.ApplyConfig(registry, cfg); err != nil {
			return err
		}
	}

	result := keybinds.NewValidator().ValidateRegistry(registry)
	if result.HasErrors() || result.HasWarnings() {
		fmt.Fprint(out, result.String())
	}

	for _, ctx := range keybinds.AllContexts {
		fmt.Fprintf(out, "\n[%s]\n", ctx)
		for _, b := range registry.ListBindings(ctx) {
			if b.Context != ctx {
				continue
			}
			fmt.Fprintf(out, "  %-16s %-14s %s\n", b.Key, b.Action, b.Action.Description())
		}
	}

	if result.HasErrors() {
		return fmt.Errorf("keybindings have %d error(s)", len(result.Errors))
	}
	return nil
}
