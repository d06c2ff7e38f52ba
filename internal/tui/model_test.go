package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/health"
	"github.com/studiowebux/snapgen/internal/orchestrator"
	"github.com/studiowebux/snapgen/internal/results"
	"github.com/studiowebux/snapgen/internal/settings"
	"github.com/studiowebux/snapgen/internal/types"
)

func TestNew_InitializesDefaultMode(t *testing.T) {
	m := CreateTestModel(t).model

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "focusedPanel", m.focusedPanel, panelForm)
	AssertModelField(t, "active tab", m.app.ActiveTab(), types.TabStrings)
	AssertModelField(t, "len(sliders)", len(m.sliders), 3)

	AssertModelField(t, "length slider", m.sliders[app.PairLength].Value(), app.LengthDefault)
	AssertModelField(t, "length field", m.numbers[app.PairLength].Value(), "16")
	AssertModelField(t, "status", m.app.Health().Status().Text, health.TextChecking)
}

func TestSliderKeysUpdateBothWidgetsAndPersist(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.press(t, key(tea.KeyRight), key(tea.KeyRight), runes("l"))

	AssertModelField(t, "length", m.app.Length().Value(), 19)
	AssertModelField(t, "slider", m.sliders[app.PairLength].Value(), 19)
	AssertModelField(t, "field", m.numbers[app.PairLength].Value(), "19")
	if v, _ := env.kv.Load(settings.KeyStringLength); v != "19" {
		t.Errorf("persisted length = %q", v)
	}

	env.press(t, runes("H"))
	AssertModelField(t, "length after big step", m.app.Length().Value(), 9)
}

func TestNumberEdit_CommitAndCancel(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.press(t, runes("e"))
	AssertModelField(t, "mode", m.mode, ModeNumberEdit)

	env.press(t, key(tea.KeyBackspace), key(tea.KeyBackspace), runes("3"), runes("0"), runes("0"), key(tea.KeyEnter))
	AssertModelField(t, "mode after commit", m.mode, ModeNormal)
	AssertModelField(t, "clamped length", m.app.Length().Value(), app.LengthMax)
	AssertModelField(t, "slider", m.sliders[app.PairLength].Value(), app.LengthMax)
	AssertModelField(t, "field", m.numbers[app.PairLength].Value(), "256")

	env.press(t, runes("e"), key(tea.KeyBackspace), runes("7"), key(tea.KeyEsc))
	AssertModelField(t, "length after cancel", m.app.Length().Value(), app.LengthMax)
	AssertModelField(t, "field after cancel", m.numbers[app.PairLength].Value(), "256")

	// q types into the field instead of quitting
	env.press(t, runes("e"))
	_, cmd := m.Update(runes("q"))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q quit while editing a number")
		}
	}
	env.press(t, key(tea.KeyEnter))
	AssertModelField(t, "length after junk", m.app.Length().Value(), app.LengthMax)
}

func TestToggleCharTypeAndSubmitWithoutTypes(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	// Move to the checkboxes and clear the three defaults
	env.press(t, key(tea.KeyDown), key(tea.KeyDown))
	for i := 0; i < 3; i++ {
		env.press(t, key(tea.KeySpace), key(tea.KeyDown))
	}
	if len(m.app.CharTypes()) != 0 {
		t.Fatalf("CharTypes() = %v, want none", m.app.CharTypes())
	}

	env.press(t, runes("g"))
	AssertModelField(t, "inline error", m.app.Results().Error(), orchestrator.MsgNoCharType)
	AssertModelField(t, "service requests", len(env.service.GetLogs()), 0)
	AssertModelField(t, "button disabled", m.app.Orchestrator().ButtonDisabled(types.TabStrings), false)
}

func TestSubmit_RendersResultsAndFocusesList(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	m.app.Count().Set(3)
	env.press(t, key(tea.KeyEnter))

	AssertModelField(t, "title", m.app.Results().Title(), orchestrator.TitleStrings)
	AssertModelField(t, "rows", m.app.Results().Len(), 3)
	AssertModelField(t, "focusedPanel", m.focusedPanel, panelResults)
	AssertModelField(t, "button label", m.app.Orchestrator().ButtonLabel(types.TabStrings), orchestrator.LabelGenerateStrings)

	view := m.View()
	if !strings.Contains(view, orchestrator.TitleStrings) {
		t.Error("view does not show the results title")
	}
}

func TestSubmit_InFlightShowsGenerating(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	AssertModelField(t, "disabled while in flight", m.app.Orchestrator().ButtonDisabled(types.TabStrings), true)
	if !strings.Contains(m.View(), orchestrator.LabelGenerating) {
		t.Error("view does not show the progress label")
	}

	// A second submit is ignored while the first is outstanding
	if _, again := m.Update(key(tea.KeyEnter)); again != nil {
		t.Error("second submit issued a request")
	}

	env.run(cmd)
	AssertModelField(t, "disabled after completion", m.app.Orchestrator().ButtonDisabled(types.TabStrings), false)
}

func TestCopy_AcknowledgesAndResets(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.press(t, key(tea.KeyEnter))
	if m.focusedPanel != panelResults {
		t.Fatal("results not focused")
	}

	// The returned command is the reset timer; it is not run here
	if _, cmd := m.Update(runes("c")); cmd == nil {
		t.Error("copy did not schedule a reset")
	}
	AssertModelField(t, "copied", len(env.clip.copied), 1)
	AssertModelField(t, "label", m.app.Results().Rows()[0].Label, results.LabelCopied)

	m.Update(copyResetMsg{ack: results.Ack{Row: 0, Token: 1}})
	AssertModelField(t, "label after reset", m.app.Results().Rows()[0].Label, results.LabelCopy)
}

func TestCopy_ClipboardFailure(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model
	env.press(t, key(tea.KeyEnter))

	env.clip.err = errors.New("no display")
	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Error("failed copy scheduled a reset")
	}
	AssertModelField(t, "error", m.app.Results().Error(), results.MsgCopyFailed)
	AssertModelField(t, "rows kept", m.app.Results().Len(), 1)
}

func TestTabSwitch_ClearsAndPersists(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.press(t, key(tea.KeyEnter))
	env.press(t, key(tea.KeyEsc), runes("2"))

	AssertModelField(t, "active tab", m.app.ActiveTab(), types.TabPassphrase)
	AssertModelField(t, "results visible", m.app.Results().Visible(), false)
	AssertModelField(t, "focusedPanel", m.focusedPanel, panelForm)
	if v, _ := env.kv.Load(settings.KeyActiveTab); v != string(types.TabPassphrase) {
		t.Errorf("persisted tab = %q", v)
	}

	env.press(t, key(tea.KeyEnter))
	AssertModelField(t, "title", m.app.Results().Title(), orchestrator.TitlePassphrase)
	AssertModelField(t, "rows", m.app.Results().Len(), 1)

	env.press(t, key(tea.KeyCtrlT))
	AssertModelField(t, "wrapped tab", m.app.ActiveTab(), types.TabStrings)
}

func TestHealth_PollUpdatesStatusAndBound(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.run(m.pollHealth())
	AssertModelField(t, "class", m.app.Health().Status().Class, health.ClassHealthy)
	if !strings.Contains(m.View(), "100 snapshots available") {
		t.Error("status bar does not show capacity")
	}

	m.app.Count().Set(50)
	m.Update(healthResultMsg{result: health.Result{Seq: 99, Status: types.HealthStatus{
		State: types.HealthHealthy, Status: "healthy", AvailableCapacity: 7,
	}}})
	AssertModelField(t, "count", m.app.Count().Value(), 7)
	if v, _ := env.kv.Load(settings.KeyStringCount); v != "7" {
		t.Errorf("persisted count = %q", v)
	}
	if !strings.Contains(m.View(), "(max 7)") {
		t.Error("form does not show the lowered bound")
	}
}

func TestQuit(t *testing.T) {
	m := CreateTestModel(t).model

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestHelpToggle(t *testing.T) {
	env := CreateTestModel(t)
	m := env.model

	env.press(t, runes("?"))
	AssertModelField(t, "mode", m.mode, ModeHelp)
	if !strings.Contains(m.View(), "Keybindings") {
		t.Error("help view not rendered")
	}
	env.press(t, key(tea.KeyEsc))
	AssertModelField(t, "mode", m.mode, ModeNormal)
}
