package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, app names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for completed steps.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for steps that finished with a warning.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed steps.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for tree connectors and descriptions.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleBold styles headings and the tree root.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleMuted styles secondary text such as file descriptions.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorDimGray)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Step status constants.
const (
	StatusDone    = "done"
	StatusWarning = "warning"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// StatusStyle returns the style for a step status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusDone:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minStepColumnWidth is the width of the step column before the status.
const minStepColumnWidth = 32

// FormatStepLine renders a step title with a right-aligned status.
func FormatStepLine(step, status string) string {
	padding := minStepColumnWidth - len(step)
	if padding < 2 {
		padding = 2
	}
	return "  " + step + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatWarningMark renders a yellow warning mark with a message.
func FormatWarningMark(msg string) string {
	mark := lipgloss.NewStyle().Foreground(ColorYellow).Render("⚠")
	return mark + " " + msg
}
