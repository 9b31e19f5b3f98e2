package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals.
var (
	// ColorRed is used for the error label.
	ColorRed = lipgloss.Color("9")

	// ColorGreen is used for template paths and written-file checkmarks.
	ColorGreen = lipgloss.Color("10")

	// ColorBlue is used for prompt progress indicators and template names in errors.
	ColorBlue = lipgloss.Color("12")

	// ColorGray is used for secondary annotations.
	ColorGray = lipgloss.Color("8")

	// ColorBorder is used for table borders.
	ColorBorder = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleError styles the "error" label printed before a failure.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

	// StyleHeading styles section headings.
	StyleHeading = lipgloss.NewStyle().Bold(true).Underline(true)

	// StylePath styles filesystem paths.
	StylePath = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleProgress styles the [i/n] prompt indicator.
	StyleProgress = lipgloss.NewStyle().Foreground(ColorBlue)

	// StyleNoun styles identifiable nouns such as template names.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorBlue)

	// StyleMuted styles annotations next to tree entries.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleBold styles the root of a file tree.
	StyleBold = lipgloss.NewStyle().Bold(true)
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	return StylePath.Render("✓") + " " + msg
}

// FormatErrorLabel renders "error: <msg>" with a styled label.
func FormatErrorLabel(msg string) string {
	return StyleError.Render("error") + ": " + msg
}

// FormatProgress renders a 1-based "[i/n]" indicator.
func FormatProgress(i, n int) string {
	return StyleProgress.Render("[" + strconv.Itoa(i) + "/" + strconv.Itoa(n) + "]")
}
