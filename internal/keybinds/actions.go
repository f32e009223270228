package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal   Context = "global"   // Available everywhere
	ContextEditor   Context = "editor"   // Main screen, a buffer has focus
	ContextSelector Context = "selector" // Data point picker
	ContextDialog   Context = "dialog"   // Alert and error dialogs
	ContextConfirm  Context = "confirm"  // Yes/no prompts
	ContextJournal  Context = "journal"  // Request journal viewer
	ContextHelp     Context = "help"     // Help viewer
)

const (
	// Global actions
	ActionQuitForce     Action = "quit_force"     // Quit application (ctrl+c)
	ActionCancelRequest Action = "cancel_request" // Cancel the in-flight request

	// Data point actions
	ActionSuggestInstruction Action = "suggest_instruction"
	ActionSuggestConfig      Action = "suggest_config"
	ActionValidate           Action = "validate"
	ActionSubmit             Action = "submit"
	ActionEdit               Action = "edit"
	ActionDelete             Action = "delete"
	ActionReload             Action = "reload"

	// Screen actions
	ActionQuit           Action = "quit"
	ActionFocusNext      Action = "focus_next"
	ActionFocusPrev      Action = "focus_prev"
	ActionOpenSelector   Action = "open_selector"
	ActionOpenJournal    Action = "open_journal"
	ActionOpenHelp       Action = "open_help"
	ActionToggleDiff     Action = "toggle_diff"
	ActionCopyBuffer     Action = "copy_buffer"
	ActionPasteClipboard Action = "paste_clipboard"

	// Text editing actions
	ActionUndo          Action = "undo"
	ActionRedo          Action = "redo"
	ActionTextNewline   Action = "text_newline"
	ActionTextBackspace Action = "text_backspace"
	ActionTextDelete    Action = "text_delete"
	ActionTextMoveLeft  Action = "text_move_left"
	ActionTextMoveRight Action = "text_move_right"
	ActionTextMoveUp    Action = "text_move_up"
	ActionTextMoveDown  Action = "text_move_down"
	ActionTextMoveHome  Action = "text_move_home"
	ActionTextMoveEnd   Action = "text_move_end"

	// Navigation actions (lists and viewers)
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Modal actions
	ActionCloseModal  Action = "close_modal"
	ActionChoose      Action = "choose"  // Pick the highlighted entry
	ActionConfirm     Action = "confirm" // Answer yes
	ActionCancel      Action = "cancel"  // Answer no
	ActionClearFilter Action = "clear_filter"
)

// AllActions lists every action a user may bind
var AllActions = []Action{
	ActionQuitForce, ActionCancelRequest,
	ActionSuggestInstruction, ActionSuggestConfig, ActionValidate, ActionSubmit, ActionEdit, ActionDelete, ActionReload,
	ActionQuit, ActionFocusNext, ActionFocusPrev, ActionOpenSelector, ActionOpenJournal, ActionOpenHelp, ActionToggleDiff,
	ActionCopyBuffer, ActionPasteClipboard,
	ActionUndo, ActionRedo, ActionTextNewline, ActionTextBackspace, ActionTextDelete,
	ActionTextMoveLeft, ActionTextMoveRight, ActionTextMoveUp, ActionTextMoveDown, ActionTextMoveHome, ActionTextMoveEnd,
	ActionNavigateUp, ActionNavigateDown, ActionPageUp, ActionPageDown, ActionGoToTop, ActionGoToBottom,
	ActionCloseModal, ActionChoose, ActionConfirm, ActionCancel, ActionClearFilter,
}

// IsKnownAction reports whether action is one of AllActions
func IsKnownAction(action Action) bool {
	for _, known := range AllActions {
		if known == action {
			return true
		}
	}
	return false
}
