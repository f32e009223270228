package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerEditorBindings(r)
	registerSelectorBindings(r)
	registerDialogBindings(r)
	registerConfirmBindings(r)
	registerJournalBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerEditorBindings covers the main screen; printable keys are typed
// into the focused buffer, so every action uses a modifier or special key
func registerEditorBindings(r *Registry) {
	r.Register(ContextEditor, "ctrl+g", ActionSuggestInstruction)
	r.Register(ContextEditor, "ctrl+o", ActionSuggestConfig)
	r.Register(ContextEditor, "ctrl+t", ActionValidate)
	r.Register(ContextEditor, "ctrl+s", ActionSubmit)
	r.Register(ContextEditor, "ctrl+e", ActionEdit)
	r.Register(ContextEditor, "ctrl+x", ActionDelete)
	r.Register(ContextEditor, "f5", ActionReload)

	r.Register(ContextEditor, "ctrl+q", ActionQuit)
	r.Register(ContextEditor, "esc", ActionCancelRequest)
	r.Register(ContextEditor, "tab", ActionFocusNext)
	r.Register(ContextEditor, "shift+tab", ActionFocusPrev)
	r.Register(ContextEditor, "ctrl+l", ActionOpenSelector)
	r.Register(ContextEditor, "f2", ActionOpenJournal)
	r.Register(ContextEditor, "f1", ActionOpenHelp)
	r.Register(ContextEditor, "ctrl+p", ActionToggleDiff)
	r.Register(ContextEditor, "ctrl+y", ActionCopyBuffer)
	r.Register(ContextEditor, "ctrl+v", ActionPasteClipboard)

	r.Register(ContextEditor, "ctrl+z", ActionUndo)
	r.Register(ContextEditor, "ctrl+r", ActionRedo)
	r.Register(ContextEditor, "enter", ActionTextNewline)
	r.Register(ContextEditor, "backspace", ActionTextBackspace)
	r.Register(ContextEditor, "delete", ActionTextDelete)
	r.Register(ContextEditor, "left", ActionTextMoveLeft)
	r.Register(ContextEditor, "right", ActionTextMoveRight)
	r.Register(ContextEditor, "up", ActionTextMoveUp)
	r.Register(ContextEditor, "down", ActionTextMoveDown)
	r.RegisterMultiple(ContextEditor, []string{"home", "ctrl+a"}, ActionTextMoveHome)
	r.Register(ContextEditor, "end", ActionTextMoveEnd)
	r.Register(ContextEditor, "pgup", ActionPageUp)
	r.Register(ContextEditor, "pgdown", ActionPageDown)
}

// registerSelectorBindings leaves printable keys to the fuzzy filter
func registerSelectorBindings(r *Registry) {
	r.RegisterMultiple(ContextSelector, []string{"up", "ctrl+k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSelector, []string{"down", "ctrl+j"}, ActionNavigateDown)
	r.Register(ContextSelector, "pgup", ActionPageUp)
	r.Register(ContextSelector, "pgdown", ActionPageDown)
	r.Register(ContextSelector, "home", ActionGoToTop)
	r.Register(ContextSelector, "end", ActionGoToBottom)
	r.Register(ContextSelector, "enter", ActionChoose)
	r.Register(ContextSelector, "esc", ActionCloseModal)
	r.Register(ContextSelector, "backspace", ActionTextBackspace)
	r.Register(ContextSelector, "ctrl+u", ActionClearFilter)
}

func registerDialogBindings(r *Registry) {
	r.RegisterMultiple(ContextDialog, []string{"enter", "esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextDialog, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDialog, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextDialog, "pgup", ActionPageUp)
	r.Register(ContextDialog, "pgdown", ActionPageDown)
	r.Register(ContextDialog, "ctrl+y", ActionCopyBuffer)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

func registerJournalBindings(r *Registry) {
	r.RegisterMultiple(ContextJournal, []string{"esc", "q", "f2"}, ActionCloseModal)
	r.RegisterMultiple(ContextJournal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextJournal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextJournal, "pgup", ActionPageUp)
	r.Register(ContextJournal, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextJournal, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextJournal, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextJournal, "r", ActionReload)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "f1", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}
