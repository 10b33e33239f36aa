// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Input styles
var (
	// InputLabel is for input labels
	InputLabel = lipgloss.NewStyle().
			Bold(true)

	// FieldBox frames an unfocused form field
	FieldBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 1)

	// FieldBoxFocused frames the focused form field
	FieldBoxFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)

// Dialog styles
var (
	// Dialog is the base style for dialog boxes
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	// DialogError is the frame of a failure dialog
	DialogError = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// DialogTitle is for dialog titles
	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			MarginBottom(1)

	// DialogTitleError is for failure dialog titles
	DialogTitleError = lipgloss.NewStyle().
				Bold(true).
				Foreground(ErrorColor).
				MarginBottom(1)
)

// Status styles
var (
	StatusText = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)

	StatusError = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusSuccess = lipgloss.NewStyle().
			Foreground(SuccessColor)

	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)
)

// Category picker styles
var (
	CategoryItem = lipgloss.NewStyle().
			PaddingLeft(1)

	CategorySelected = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#333333"})

	// CategoryChosen marks the row that will be submitted
	CategoryChosen = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)
)

// Calendar styles
var (
	// CalendarWeekday is for day-of-week headers
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	// CalendarDay is for regular days
	CalendarDay = lipgloss.NewStyle()

	// CalendarDaySelected is for the selected day
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDayToday is for today's date
	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	// CalendarDayOriginal marks the record's saved date
	CalendarDayOriginal = lipgloss.NewStyle().
				Foreground(WarningColor)

	// CalendarDayWeekend is for Saturday and Sunday
	CalendarDayWeekend = lipgloss.NewStyle().
				Foreground(Subtle)
)

// CategorySwatch renders a small colored block for a category color such as
// "#ff0000". Missing or malformed colors render as a blank of the same width.
func CategorySwatch(color *string) string {
	if color == nil || !isHexColor(*color) {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(*color)).Render("  ")
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
