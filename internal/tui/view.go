package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/bubbly-todo/internal/edit"
	"github.com/hy4ri/bubbly-todo/internal/tui/styles"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.closed {
		return ""
	}

	if a.dialog != nil {
		body := a.dialog.View()
		if a.status != "" {
			body += "\n" + a.renderStatus()
		}
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
		}
		return styles.App.Render(body)
	}

	return styles.App.Render(a.renderForm())
}

func (a *App) renderForm() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Edit Todo #%d", a.screen.ID())))
	b.WriteString("\n\n")

	b.WriteString(a.renderField("Todo", a.textInput.View(), FieldText))
	b.WriteString("\n")
	b.WriteString(a.renderField("Date", a.datePicker.View(), FieldDate))
	b.WriteString("\n")
	b.WriteString(a.renderField("Category", a.categoryPicker.View(), FieldCategory))
	b.WriteString("\n")

	submitStyle := styles.HelpDesc
	if a.focused == FieldSubmit {
		submitStyle = styles.HelpKey
	}
	b.WriteString(submitStyle.Render("[ Save Changes ]"))
	b.WriteString("\n\n")

	if line := a.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(a.help.View(formHelp{keys: a.keymap, focused: a.focused}))

	return b.String()
}

// renderField renders a framed form field with its label.
func (a *App) renderField(label, content string, field Field) string {
	labelStyle := styles.InputLabel
	box := styles.FieldBox
	if a.focused == field {
		labelStyle = labelStyle.Foreground(styles.Highlight)
		box = styles.FieldBoxFocused
	}
	return labelStyle.Render(label) + "\n" + box.Render(content)
}

func (a *App) renderStatus() string {
	switch a.screen.Phase() {
	case edit.PhaseLoading:
		return a.spinner.View() + styles.StatusText.Render(" Loading categories…")
	case edit.PhaseSubmitting:
		return a.spinner.View() + styles.StatusText.Render(" Saving…")
	}

	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return styles.StatusError.Render(a.status)
	}
	return styles.StatusSuccess.Render(a.status)
}
