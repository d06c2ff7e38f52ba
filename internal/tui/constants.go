package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Content Area Offsets
	ResultsHeightOffset = 20 // m.height - 20 leaves room for tabs, form and status bar
	HelpHeightOffset    = 6  // m.height - 6 for the help viewer

	// Widgets
	SliderWidth      = 32 // Width of a slider bar
	NumberFieldWidth = 4  // Characters in a number field
	LabelWidth       = 28 // Width of the form label column
	LargeStep        = 10 // Slider step for the big increment keys
)

// StatusMessageTimeout is how long footer messages stay visible
const StatusMessageTimeout = 3 * time.Second
