package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 3 // Standard vertical margin (m.height - 3)
	ModalMaxWidth     = 100

	// Borders consume one cell on each side
	BoxBorderWidth = 2

	// Main screen rows outside the editor grid: title bar and status bar
	MainChromeLines = 2

	// Editor grid split when the diff pane is hidden / shown
	TopRowRatio         = 0.6
	TopRowRatioWithDiff = 0.45
	DiffRowRatio        = 0.3

	// Minimum editor box height (title + one line + borders)
	MinBoxHeight = 4

	// Journal entries loaded into the modal
	JournalModalLimit = 200

	// Selector rows shown above/below the cursor
	SelectorMaxRows = 15

	// Status messages longer than this are truncated in the status bar
	StatusMaxLength = 100
)
