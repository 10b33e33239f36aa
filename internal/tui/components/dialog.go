package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/bubbly-todo/internal/tui/styles"
)

// ResultDialog is the blocking acknowledgement shown after a submit.
type ResultDialog struct {
	OK      bool
	Message string
	Width   int
}

// View renders the dialog box.
func (d ResultDialog) View() string {
	title, frame, titleStyle := "Saved", styles.Dialog, styles.DialogTitle
	if !d.OK {
		title, frame, titleStyle = "Error", styles.DialogError, styles.DialogTitleError
	}

	width := d.Width
	if width <= 0 || width > 60 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width - 6).Render(d.Message))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" ok  "))
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" copy message"))

	return frame.Render(b.String())
}
