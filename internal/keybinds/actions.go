package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal     Context = "global"      // Available everywhere
	ContextForm       Context = "form"        // Request form has focus
	ContextResults    Context = "results"     // Result list has focus
	ContextNumberEdit Context = "number_edit" // Typing into a number field
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionHelp      Action = "toggle_help"

	// Tabs
	ActionSwitchTab     Action = "switch_tab"     // Next tab
	ActionTabStrings    Action = "tab_strings"    // Random strings form
	ActionTabPassphrase Action = "tab_passphrase" // Passphrase form

	// Form
	ActionNextField  Action = "next_field"
	ActionPrevField  Action = "prev_field"
	ActionIncrement  Action = "increment"      // Slider right
	ActionDecrement  Action = "decrement"      // Slider left
	ActionIncrementL Action = "increment_big"  // Slider right by ten
	ActionDecrementL Action = "decrement_big"  // Slider left by ten
	ActionToggle     Action = "toggle"         // Toggle focused checkbox
	ActionEditNumber Action = "edit_number"    // Focus the number field of a pair
	ActionSubmit     Action = "submit"         // Generate
	ActionFocusList  Action = "focus_results"  // Move focus to the result list

	// Results
	ActionSelectUp   Action = "select_up"
	ActionSelectDown Action = "select_down"
	ActionCopy       Action = "copy"
	ActionFocusForm  Action = "focus_form"

	// Number editing
	ActionCommit Action = "commit" // Apply typed value
	ActionCancel Action = "cancel" // Discard typed value
)

// AllContexts lists every known context
var AllContexts = []Context{ContextGlobal, ContextForm, ContextResults, ContextNumberEdit}

// AllActions lists every known action
var AllActions = []Action{
	ActionQuit, ActionQuitForce, ActionHelp,
	ActionSwitchTab, ActionTabStrings, ActionTabPassphrase,
	ActionNextField, ActionPrevField, ActionIncrement, ActionDecrement,
	ActionIncrementL, ActionDecrementL, ActionToggle, ActionEditNumber,
	ActionSubmit, ActionFocusList,
	ActionSelectUp, ActionSelectDown, ActionCopy, ActionFocusForm,
	ActionCommit, ActionCancel,
}

// IsKnownAction reports whether a is one of AllActions
func IsKnownAction(a Action) bool {
	for _, known := range AllActions {
		if known == a {
			return true
		}
	}
	return false
}

// Description returns the help text for an action
func (a Action) Description() string {
	switch a {
	case ActionQuit, ActionQuitForce:
		return "quit"
	case ActionHelp:
		return "toggle help"
	case ActionSwitchTab:
		return "switch tab"
	case ActionTabStrings:
		return "random strings"
	case ActionTabPassphrase:
		return "passphrase"
	case ActionNextField:
		return "next field"
	case ActionPrevField:
		return "previous field"
	case ActionIncrement:
		return "increase"
	case ActionDecrement:
		return "decrease"
	case ActionIncrementL:
		return "increase by 10"
	case ActionDecrementL:
		return "decrease by 10"
	case ActionToggle:
		return "toggle"
	case ActionEditNumber:
		return "type a value"
	case ActionSubmit:
		return "generate"
	case ActionFocusList:
		return "results"
	case ActionSelectUp:
		return "up"
	case ActionSelectDown:
		return "down"
	case ActionCopy:
		return "copy"
	case ActionFocusForm:
		return "back to form"
	case ActionCommit:
		return "apply"
	case ActionCancel:
		return "cancel"
	}
	return string(a)
}
