package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Task status colors
const (
	ColorCancelled  Color = "8"  // Gray
	ColorCompleted  Color = "2"  // Green
	ColorInProgress Color = "33" // Blue
	ColorPending    Color = "3"  // Yellow
)

// Task priority colors
const (
	ColorPriorityHigh   Color = "196"
	ColorPriorityLow    Color = "245"
	ColorPriorityMedium Color = "214"
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSelected  Color = "57"  // Table selection background
	ColorSubtle    Color = "245" // Light gray - labels
	ColorSuccess   Color = "2"
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorDimmed    Color = "240"
	ColorHelpGroup Color = "141" // Purple
	ColorHintKey   Color = "226" // Yellow
	ColorSpinner   Color = "205" // Pink
)
