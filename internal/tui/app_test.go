package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/hy4ri/bubbly-todo/internal/edit"
	"github.com/hy4ri/bubbly-todo/internal/tui/components"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu         sync.Mutex
	categories []api.Category
	loadErr    error
	updateMsg  string
	updateErr  error
	requests   []api.EditTodoRequest
	updateCtx  context.Context
}

func (f *fakeService) GetCategories(ctx context.Context) ([]api.Category, error) {
	return f.categories, f.loadErr
}

func (f *fakeService) UpdateTodo(ctx context.Context, id int64, req api.EditTodoRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.updateCtx = ctx
	return f.updateMsg, f.updateErr
}

func record() api.Todo {
	return api.Todo{
		ID:            42,
		Todo:          "Buy milk",
		TodoDate:      "2024-09-10",
		TodoCategory:  "Errands",
		CategoryColor: api.StringPtr("#ff0000"),
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 9, 12, 10, 0, 0, 0, time.Local)
}

func newTestApp(svc *fakeService, opts Options) *App {
	return newTestAppFor(svc, opts, record())
}

func newTestAppFor(svc *fakeService, opts Options, rec api.Todo) *App {
	opts.Logger = zerolog.Nop()
	opts.VimMode = true
	opts.Now = fixedNow
	if opts.Notifier == nil {
		opts.Notifier = func(string, string) error { return nil }
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	return NewApp(edit.NewFlow(svc, zerolog.Nop()), edit.New(rec.ID, rec), opts)
}

// exec runs cmd and any batched commands, returning the produced messages.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// deliver executes cmd and feeds back the messages of type T.
func deliver[T tea.Msg](t *testing.T, a *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	msg, ok := find[T](exec(cmd))
	require.True(t, ok, "expected %T from command", msg)
	_, next := a.Update(msg)
	return next
}

func press(a *App, k tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func loaded(t *testing.T, svc *fakeService, opts Options) *App {
	t.Helper()
	a := newTestApp(svc, opts)
	deliver[categoriesLoadedMsg](t, a, a.Init())
	return a
}

func twoCategories() []api.Category {
	return []api.Category{
		{Category: "Errands", CategoryColor: api.StringPtr("#ff0000")},
		{Category: "Work"},
	}
}

func TestLoadPopulatesPicker(t *testing.T) {
	svc := &fakeService{categories: twoCategories()}
	a := newTestApp(svc, Options{})

	cmd := a.Init()
	assert.Equal(t, edit.PhaseLoading, a.Screen().Phase())

	deliver[categoriesLoadedMsg](t, a, cmd)
	assert.Equal(t, edit.PhaseReady, a.Screen().Phase())
	assert.Equal(t, 2, a.categoryPicker.Len())
	assert.Equal(t, 0, a.categoryPicker.Cursor(), "cursor starts on the record's category")
	assert.Contains(t, a.View(), "Work")
}

func TestChoosingRowSelectsThatCategory(t *testing.T) {
	categories := []api.Category{{Category: "Errands"}, {Category: "Work"}, {Category: "Home"}}

	for i, c := range categories {
		a := loaded(t, &fakeService{categories: categories}, Options{})

		press(a, keyTab)
		press(a, keyTab)
		require.Equal(t, FieldCategory, a.focused)

		for n := 0; n < i; n++ {
			press(a, keyDown)
		}
		deliver[components.CategoryChosenMsg](t, a, press(a, keyEnter))

		name, ok := a.Screen().Selection()
		assert.True(t, ok)
		assert.Equal(t, c.Category, name)
	}
}

func TestExampleScenarioChangeDateOnly(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateMsg: "Updated successfully"}
	a := loaded(t, svc, Options{})

	press(a, keyTab)
	require.Equal(t, FieldDate, a.focused)
	for n := 0; n < 5; n++ {
		press(a, runes("l"))
	}

	next := deliver[submitResultMsg](t, a, press(a, keySave))
	assert.Nil(t, next)

	require.Len(t, svc.requests, 1)
	assert.Equal(t, api.EditTodoRequest{
		Todo:              "Buy milk",
		TodoDate:          "2024-09-15",
		TodoCategory:      "Errands",
		TodoCategoryColor: api.StringPtr("#ff0000"),
	}, svc.requests[0])

	assert.Equal(t, edit.PhaseSuccess, a.Screen().Phase())
	require.NotNil(t, a.dialog)
	assert.True(t, a.dialog.OK)
	assert.Contains(t, a.View(), "Updated successfully")

	_, done := a.Result()
	assert.False(t, done, "result is reported only after acknowledgement")

	msgs := exec(press(a, keyEnter))
	_, quit := find[tea.QuitMsg](msgs)
	assert.True(t, quit, "acknowledging success leaves the screen")

	res, done := a.Result()
	assert.True(t, done)
	assert.Equal(t, "Updated successfully", res.Message)
}

func TestSubmitEmptyTextKeepsOriginal(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateMsg: "ok"}
	a := loaded(t, svc, Options{})

	a.textInput.SetValue("")
	deliver[submitResultMsg](t, a, press(a, keySave))

	require.Len(t, svc.requests, 1)
	assert.Equal(t, "Buy milk", svc.requests[0].Todo)
	assert.Equal(t, "2024-09-10", svc.requests[0].TodoDate)
}

func TestSubmitUntouchedTextIsSentVerbatim(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"multi-line", "line1\nline2\tend"},
		{"long", strings.Repeat("ab", 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record()
			rec.Todo = tt.text
			svc := &fakeService{categories: twoCategories(), updateMsg: "ok"}
			a := newTestAppFor(svc, Options{}, rec)
			deliver[categoriesLoadedMsg](t, a, a.Init())

			press(a, keyTab)
			deliver[submitResultMsg](t, a, press(a, keySave))

			require.Len(t, svc.requests, 1)
			assert.Equal(t, tt.text, svc.requests[0].Todo)
		})
	}
}

func TestSubmitEditedText(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateMsg: "ok"}
	a := loaded(t, svc, Options{})

	a.textInput.SetValue("Buy oat milk")
	deliver[submitResultMsg](t, a, press(a, keySave))

	require.Len(t, svc.requests, 1)
	assert.Equal(t, "Buy oat milk", svc.requests[0].Todo)
}

func TestFailureKeepsScreenOpen(t *testing.T) {
	svc := &fakeService{
		categories: twoCategories(),
		updateErr:  &api.APIError{StatusCode: 500, Message: "database unavailable"},
	}
	a := loaded(t, svc, Options{})

	deliver[submitResultMsg](t, a, press(a, keySave))
	assert.Equal(t, edit.PhaseFailed, a.Screen().Phase())
	require.NotNil(t, a.dialog)
	assert.False(t, a.dialog.OK)
	assert.Equal(t, "database unavailable", a.dialog.Message)

	msgs := exec(press(a, keyEnter))
	_, quit := find[tea.QuitMsg](msgs)
	assert.False(t, quit)
	assert.Nil(t, a.dialog)
	assert.False(t, a.closed)

	// Manual resubmit is allowed from the failed state.
	svc.updateErr = nil
	svc.updateMsg = "Updated successfully"
	deliver[submitResultMsg](t, a, press(a, keySave))
	assert.Equal(t, edit.PhaseSuccess, a.Screen().Phase())
	assert.Len(t, svc.requests, 2)
}

func TestFailureEmptyBodyUsesFallback(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateErr: &api.APIError{StatusCode: 400}}
	a := loaded(t, svc, Options{})

	deliver[submitResultMsg](t, a, press(a, keySave))
	require.NotNil(t, a.dialog)
	assert.Equal(t, edit.FallbackRejectMessage, a.dialog.Message)
}

func TestTransportFailureMessage(t *testing.T) {
	svc := &fakeService{
		categories: twoCategories(),
		updateErr:  &api.NetworkError{Op: "POST /bubbly-todo/update/42", Err: errors.New("connection refused")},
	}
	a := loaded(t, svc, Options{})

	deliver[submitResultMsg](t, a, press(a, keySave))
	require.NotNil(t, a.dialog)
	assert.Equal(t, "update failed: connection refused", a.dialog.Message)
}

func TestResubmitWhileInFlightIsRejected(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateMsg: "ok"}
	a := loaded(t, svc, Options{})

	first := press(a, keySave)
	require.NotNil(t, first)
	assert.Equal(t, edit.PhaseSubmitting, a.Screen().Phase())

	second := press(a, keySave)
	assert.Nil(t, second)
	assert.True(t, a.statusErr)
	assert.Equal(t, edit.ErrSubmitInFlight.Error(), a.status)

	deliver[submitResultMsg](t, a, first)
	assert.Len(t, svc.requests, 1)
}

func TestSubmitBeforeCategoriesLoadIsRejected(t *testing.T) {
	svc := &fakeService{categories: twoCategories()}
	a := newTestApp(svc, Options{})
	a.Init()

	assert.Nil(t, press(a, keySave))
	assert.Equal(t, edit.ErrNotReady.Error(), a.status)
}

func TestCategoryLoadFailureFallsBackToOriginal(t *testing.T) {
	svc := &fakeService{
		loadErr:   &api.DecodeError{Path: "/category", Err: errors.New("unexpected EOF")},
		updateMsg: "ok",
	}
	a := loaded(t, svc, Options{})

	assert.Equal(t, edit.PhaseReady, a.Screen().Phase())
	assert.Equal(t, 0, a.categoryPicker.Len())
	assert.Contains(t, a.View(), "No categories available")

	deliver[submitResultMsg](t, a, press(a, keySave))
	require.Len(t, svc.requests, 1)
	assert.Equal(t, "Errands", svc.requests[0].TodoCategory)
}

func TestEscCancelsPendingSubmit(t *testing.T) {
	svc := &fakeService{categories: twoCategories(), updateMsg: "ok"}
	a := loaded(t, svc, Options{})

	submit := press(a, keySave)
	require.NotNil(t, submit)

	msgs := exec(press(a, keyEsc))
	_, quit := find[tea.QuitMsg](msgs)
	assert.True(t, quit)

	// The request issued after dismissal sees a cancelled context.
	exec(submit)
	require.NotNil(t, svc.updateCtx)
	assert.ErrorIs(t, svc.updateCtx.Err(), context.Canceled)

	_, done := a.Result()
	assert.False(t, done)
}

func TestCopyAndNotify(t *testing.T) {
	var copied, notified string
	svc := &fakeService{categories: twoCategories(), updateMsg: "Updated successfully"}
	a := loaded(t, svc, Options{
		Notify:    true,
		Notifier:  func(title, message string) error { notified = message; return nil },
		Clipboard: func(text string) error { copied = text; return nil },
	})

	_, next := a.Update(mustFind[submitResultMsg](t, exec(press(a, keySave))))
	exec(next)
	assert.Equal(t, "Updated successfully", notified)

	status, ok := find[statusMsg](exec(press(a, runes("y"))))
	require.True(t, ok)
	assert.False(t, status.isErr)
	assert.Equal(t, "Updated successfully", copied)
	assert.NotNil(t, a.dialog, "copying keeps the dialog open")
}

func mustFind[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	v, ok := find[T](msgs)
	require.True(t, ok, "expected %T", v)
	return v
}
