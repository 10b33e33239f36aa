// Package tui provides the terminal user interface of the edit-todo screen.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/bubbly-todo/internal/edit"
	"github.com/hy4ri/bubbly-todo/internal/tui/components"
	"github.com/hy4ri/bubbly-todo/internal/tui/styles"
	"github.com/rs/zerolog"
)

// Field represents which form field is focused.
type Field int

const (
	FieldText Field = iota
	FieldDate
	FieldCategory
	FieldSubmit
)

const fieldCount = 4

// Options configures an App.
type Options struct {
	// Context bounds every network call; cancelling it aborts pending calls.
	Context context.Context
	Logger  zerolog.Logger
	VimMode bool

	// Notify sends a desktop notification after a successful save.
	Notify   bool
	Notifier func(title, message string) error

	// Clipboard copies a dialog message.
	Clipboard func(text string) error

	// Now is the clock used for the "today" marker.
	Now func() time.Time
}

// App is the Bubble Tea model of the edit screen.
type App struct {
	ctx    context.Context
	flow   *edit.Flow
	logger zerolog.Logger

	// screen is replaced, never mutated, on every flow event.
	screen edit.Screen

	textInput      textinput.Model
	datePicker     *components.DatePickerModel
	categoryPicker *components.CategoryPickerModel
	spinner        spinner.Model
	help           help.Model
	keymap         Keymap

	// seeded is the text input's value right after prefilling. The input
	// flattens newlines, so an unchanged value stands for the record's text.
	seeded string

	focused   Field
	dialog    *components.ResultDialog
	status    string
	statusErr bool
	width     int
	height    int

	loadCancel   context.CancelFunc
	submitCancel context.CancelFunc

	notify    bool
	notifier  func(title, message string) error
	clipboard func(text string) error
	closed    bool
}

// NewApp creates the edit screen for screen's record.
func NewApp(flow *edit.Flow, screen edit.Screen, opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = desktopNotify
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	keymap := DefaultKeymap(opts.VimMode)
	record := screen.Record()

	ti := textinput.New()
	ti.Placeholder = record.Todo
	ti.Width = 50
	ti.SetValue(record.Todo)
	ti.Focus()

	now := opts.Now()
	initial, ok := record.Date()
	if !ok {
		initial = now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &App{
		ctx:            opts.Context,
		flow:           flow,
		logger:         opts.Logger,
		screen:         screen,
		textInput:      ti,
		seeded:         ti.Value(),
		datePicker:     components.NewDatePicker(initial, now, keymap.Picker),
		categoryPicker: components.NewCategoryPicker(keymap.Picker),
		spinner:        s,
		help:           help.New(),
		keymap:         keymap,
		focused:        FieldText,
		notify:         opts.Notify,
		notifier:       opts.Notifier,
		clipboard:      opts.Clipboard,
	}
}

// Screen returns the current screen state.
func (a *App) Screen() edit.Screen {
	return a.screen
}

// Result reports the submit outcome once the user acknowledged a successful save.
func (a *App) Result() (edit.Result, bool) {
	if !a.closed || a.screen.Phase() != edit.PhaseSuccess {
		return edit.Result{}, false
	}
	return edit.Result{OK: true, Message: a.screen.Message()}, true
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		a.loadCategories(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case categoriesLoadedMsg:
		return a.handleCategoriesLoaded(msg)

	case submitResultMsg:
		return a.handleSubmitResult(msg)

	case components.CategoryChosenMsg:
		return a.handleCategoryChosen(msg)

	case components.DateChangedMsg:
		a.logger.Debug().Time("date", msg.Date).Msg("date changed")
		return a, nil

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isErr
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other input-internal messages
	var cmd tea.Cmd
	a.textInput, cmd = a.textInput.Update(msg)
	return a, cmd
}

func (a *App) busy() bool {
	p := a.screen.Phase()
	return p == edit.PhaseLoading || p == edit.PhaseSubmitting
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width

	inputWidth := width - 10
	if inputWidth < 30 {
		inputWidth = 30
	}
	if inputWidth > 60 {
		inputWidth = 60
	}
	a.textInput.Width = inputWidth

	// Rows left for the category list after the text field, calendar and chrome.
	rows := height - 24
	if rows < 3 {
		rows = 3
	}
	a.categoryPicker.SetSize(inputWidth, rows)
}

func (a *App) handleCategoriesLoaded(msg categoriesLoadedMsg) (tea.Model, tea.Cmd) {
	a.loadCancel = nil

	if msg.err != nil {
		a.screen = a.screen.CategoriesUnavailable()
		a.categoryPicker.SetData(edit.CategorySet{}, -1)
		a.status, a.statusErr = "Categories unavailable; keeping "+a.screen.Category(), true
		return a, nil
	}

	a.screen = a.screen.CategoriesLoaded(msg.set)
	a.categoryPicker.SetData(msg.set, a.screen.InitialRow())
	a.categoryPicker.SetChosen(a.screen.Category())
	return a, nil
}

func (a *App) handleCategoryChosen(msg components.CategoryChosenMsg) (tea.Model, tea.Cmd) {
	next, err := a.screen.SelectCategory(msg.Index)
	if err != nil {
		a.status, a.statusErr = err.Error(), true
		return a, nil
	}
	a.screen = next
	a.categoryPicker.SetChosen(next.Category())
	a.status, a.statusErr = "Category: "+next.Category(), false
	return a, nil
}

func (a *App) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	a.submitCancel = nil

	if msg.result.OK {
		a.screen = a.screen.Succeeded(msg.result.Message)
	} else {
		a.screen = a.screen.Failed(msg.result.Message)
	}
	a.status = ""
	a.dialog = &components.ResultDialog{
		OK:      msg.result.OK,
		Message: msg.result.Message,
		Width:   a.width,
	}

	if msg.result.OK && a.notify {
		return a, a.notifyCmd(msg.result.Message)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keymap.Quit) {
		return a.close()
	}

	if a.dialog != nil {
		return a.handleDialogKey(msg)
	}

	switch {
	case key.Matches(msg, a.keymap.Back):
		return a.close()
	case key.Matches(msg, a.keymap.Submit):
		return a, a.submit()
	case key.Matches(msg, a.keymap.NextField):
		a.focus((a.focused + 1) % fieldCount)
		return a, nil
	case key.Matches(msg, a.keymap.PrevField):
		a.focus((a.focused - 1 + fieldCount) % fieldCount)
		return a, nil
	}

	switch a.focused {
	case FieldText:
		if msg.Type == tea.KeyEnter {
			a.focus(FieldDate)
			return a, nil
		}
		var cmd tea.Cmd
		a.textInput, cmd = a.textInput.Update(msg)
		return a, cmd
	case FieldDate:
		_, cmd := a.datePicker.Update(msg)
		return a, cmd
	case FieldCategory:
		_, cmd := a.categoryPicker.Update(msg)
		return a, cmd
	case FieldSubmit:
		if msg.Type == tea.KeyEnter {
			return a, a.submit()
		}
	}
	return a, nil
}

func (a *App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Copy):
		return a, a.copyCmd(a.dialog.Message)
	case key.Matches(msg, a.keymap.Ack):
		ok := a.dialog.OK
		a.dialog = nil
		if ok {
			// Back to the caller.
			a.closed = true
			return a, tea.Quit
		}
		a.focus(FieldText)
	}
	return a, nil
}

// submit starts an update unless the screen state rejects it.
func (a *App) submit() tea.Cmd {
	next, err := a.screen.BeginSubmit()
	if err != nil {
		a.logger.Warn().Err(err).Str("phase", a.screen.Phase().String()).Msg("submit rejected")
		a.status, a.statusErr = err.Error(), true
		return nil
	}
	a.screen = next
	a.status, a.statusErr = "", false

	req := next.BuildRequest(a.editedText(), a.datePicker.Date())
	return tea.Batch(a.spinner.Tick, a.submitCmd(next.ID(), req))
}

// editedText returns the text to submit; an untouched input yields the
// record's text unmodified.
func (a *App) editedText() string {
	text := a.textInput.Value()
	if text == a.seeded {
		return a.screen.Record().Todo
	}
	return text
}

// close cancels pending network calls and leaves the screen.
func (a *App) close() (tea.Model, tea.Cmd) {
	a.cancelPending()
	a.closed = true
	return a, tea.Quit
}

func (a *App) cancelPending() {
	if a.loadCancel != nil {
		a.loadCancel()
		a.loadCancel = nil
	}
	if a.submitCancel != nil {
		a.submitCancel()
		a.submitCancel = nil
	}
}

func (a *App) focus(f Field) {
	a.focused = f
	a.textInput.Blur()
	a.datePicker.Blur()
	a.categoryPicker.Blur()

	switch f {
	case FieldText:
		a.textInput.Focus()
	case FieldDate:
		a.datePicker.Focus()
	case FieldCategory:
		a.categoryPicker.Focus()
	}
}
