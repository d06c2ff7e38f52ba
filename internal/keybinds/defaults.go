package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerFormBindings(r)
	registerResultsBindings(r)
	registerNumberEditBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+t", ActionSwitchTab)
}

// registerFormBindings sets up the request form
func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "q", ActionQuit)
	r.Register(ContextForm, "?", ActionHelp)
	r.Register(ContextForm, "1", ActionTabStrings)
	r.Register(ContextForm, "2", ActionTabPassphrase)
	r.RegisterMultiple(ContextForm, []string{"down", "j", "tab"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"up", "k", "shift+tab"}, ActionPrevField)
	r.RegisterMultiple(ContextForm, []string{"right", "l", "+"}, ActionIncrement)
	r.RegisterMultiple(ContextForm, []string{"left", "h", "-"}, ActionDecrement)
	r.RegisterMultiple(ContextForm, []string{"shift+right", "L", "pgup"}, ActionIncrementL)
	r.RegisterMultiple(ContextForm, []string{"shift+left", "H", "pgdown"}, ActionDecrementL)
	r.RegisterMultiple(ContextForm, []string{" ", "space", "x"}, ActionToggle)
	r.Register(ContextForm, "e", ActionEditNumber)
	r.RegisterMultiple(ContextForm, []string{"enter", "g"}, ActionSubmit)
	r.Register(ContextForm, "r", ActionFocusList)
}

// registerResultsBindings sets up the result list
func registerResultsBindings(r *Registry) {
	r.Register(ContextResults, "q", ActionQuit)
	r.Register(ContextResults, "?", ActionHelp)
	r.RegisterMultiple(ContextResults, []string{"up", "k"}, ActionSelectUp)
	r.RegisterMultiple(ContextResults, []string{"down", "j"}, ActionSelectDown)
	r.RegisterMultiple(ContextResults, []string{"enter", "c", "y"}, ActionCopy)
	r.RegisterMultiple(ContextResults, []string{"esc", "r", "tab"}, ActionFocusForm)
	r.Register(ContextResults, "g", ActionSubmit)
}

// registerNumberEditBindings sets up typing into a number field
func registerNumberEditBindings(r *Registry) {
	r.RegisterMultiple(ContextNumberEdit, []string{"enter", "tab"}, ActionCommit)
	r.Register(ContextNumberEdit, "esc", ActionCancel)
}
