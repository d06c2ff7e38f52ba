/*
Package tui implements the terminal user interface for snapgen.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: holds the app.App state plus widget and focus state
  - Update: processes messages and returns commands
  - View: renders the current state to the terminal

# Key Components

  - model.go: core state, message types and initialization
  - keys.go: keyboard input handling and keybind routing
  - actions.go: commands with side effects (health polls, generation, copy)
  - render.go: view rendering and styles
  - widgets.go: Slider and NumberField, the two widgets of a control pair

# Concurrency

All state is mutated inside Update. Network calls run as tea.Cmds and come
back as messages:
  - healthTickMsg fires every poll interval and issues a new poll without
    waiting for the previous one; healthResultMsg applies results in the
    order they complete
  - generationDoneMsg completes a submission and returns its form to idle
  - copyResetMsg reverts a row's copy acknowledgment

# Keybindings

Keybinds are managed through the keybinds.Registry:
  - Context-aware (form, results, number_edit)
  - User-customizable via keybinds.json
*/
package tui
