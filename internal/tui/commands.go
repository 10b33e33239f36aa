package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/hy4ri/bubbly-todo/internal/edit"
)

// Message types
type categoriesLoadedMsg struct {
	set edit.CategorySet
	err error
}

type submitResultMsg struct {
	result edit.Result
}

type statusMsg struct {
	text  string
	isErr bool
}

// desktopNotify is the default Options.Notifier.
func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// loadCategories moves the screen into loading and fetches the categories
// off the event loop.
func (a *App) loadCategories() tea.Cmd {
	a.screen = a.screen.StartLoading()

	ctx, cancel := context.WithCancel(a.ctx)
	a.loadCancel = cancel
	flow := a.flow

	return func() tea.Msg {
		set, err := flow.LoadCategories(ctx)
		return categoriesLoadedMsg{set: set, err: err}
	}
}

func (a *App) submitCmd(id int64, req api.EditTodoRequest) tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.submitCancel = cancel
	flow := a.flow

	return func() tea.Msg {
		return submitResultMsg{result: flow.Submit(ctx, id, req)}
	}
}

func (a *App) notifyCmd(message string) tea.Cmd {
	notifier := a.notifier
	logger := a.logger

	return func() tea.Msg {
		if err := notifier("bubbly-todo", message); err != nil {
			logger.Warn().Err(err).Msg("failed to send notification")
		}
		return nil
	}
}

func (a *App) copyCmd(text string) tea.Cmd {
	copyText := a.clipboard

	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return statusMsg{text: "Failed to copy: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Copied message"}
	}
}
