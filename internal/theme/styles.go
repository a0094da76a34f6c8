package theme

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(16)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginTop(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	UserStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Dashboard styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 2).
			MarginRight(1)

	CardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(25)
)

// Tip styles
var (
	TipKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	TipTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Overlay styles
var (
	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(1, 3)

	DimmedStyle = lipgloss.NewStyle().
			Foreground(ColorDimmed)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// SuccessStyle renders confirmation notices
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorSuccess)

// StatusStyle returns the style for a task status
func StatusStyle(status string) lipgloss.Style {
	color := ColorNormal
	switch status {
	case "pending":
		color = ColorPending
	case "in_progress":
		color = ColorInProgress
	case "completed":
		color = ColorCompleted
	case "cancelled":
		color = ColorCancelled
	}
	return lipgloss.NewStyle().Foreground(color)
}

// PriorityStyle returns the style for a task priority
func PriorityStyle(priority string) lipgloss.Style {
	color := ColorNormal
	switch priority {
	case "high":
		color = ColorPriorityHigh
	case "medium":
		color = ColorPriorityMedium
	case "low":
		color = ColorPriorityLow
	}
	return lipgloss.NewStyle().Foreground(color)
}

// TableStyles returns the bubbles table styles used by every list screen
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorHighlight).
		Background(ColorSelected).
		Bold(false)
	return s
}
