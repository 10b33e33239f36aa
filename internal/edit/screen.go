package edit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hy4ri/bubbly-todo/internal/api"
)

// Phase is a step of the edit screen's lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrCategoryIndex is returned when a picker row outside the loaded list is selected.
	ErrCategoryIndex = errors.New("category index out of range")

	// ErrNotReady is returned when a submit is attempted before categories finished loading.
	ErrNotReady = errors.New("screen is not ready")

	// ErrSubmitInFlight is returned when a submit is attempted while another is pending.
	ErrSubmitInFlight = errors.New("an update is already in progress")

	// ErrCompleted is returned when a submit is attempted after a successful update.
	ErrCompleted = errors.New("todo was already updated")
)

// Screen is an immutable snapshot of the edit screen. Every event returns a
// new Screen; the receiver is never modified.
type Screen struct {
	id           int64
	record       api.Todo
	phase        Phase
	categories   CategorySet
	selected     string
	hasSelection bool
	message      string
}

// New initializes a screen for the record with the given id.
// The id is trusted to reference an existing record.
func New(id int64, record api.Todo) Screen {
	return Screen{
		id:     id,
		record: record,
		phase:  PhaseIdle,
	}
}

// ID returns the target todo id.
func (s Screen) ID() int64 { return s.id }

// Record returns the original record.
func (s Screen) Record() api.Todo { return s.record }

// Phase returns the current lifecycle phase.
func (s Screen) Phase() Phase { return s.phase }

// Categories returns the loaded categories.
func (s Screen) Categories() CategorySet { return s.categories }

// Message returns the last submit result message.
func (s Screen) Message() string { return s.message }

// Selection returns the explicitly selected category, if any.
func (s Screen) Selection() (string, bool) {
	return s.selected, s.hasSelection
}

// Category returns the category that would be submitted now.
func (s Screen) Category() string {
	if s.hasSelection {
		return s.selected
	}
	return s.record.TodoCategory
}

// InitialRow returns the picker row to highlight when categories arrive:
// the record's own category if present, otherwise the first row.
// It returns -1 when no categories are loaded.
func (s Screen) InitialRow() int {
	if s.categories.Len() == 0 {
		return -1
	}
	if i := s.categories.IndexOf(s.record.TodoCategory); i >= 0 {
		return i
	}
	return 0
}

// StartLoading moves an idle screen into the loading phase.
func (s Screen) StartLoading() Screen {
	s.phase = PhaseLoading
	return s
}

// CategoriesLoaded stores the loaded categories and makes the screen ready.
func (s Screen) CategoriesLoaded(set CategorySet) Screen {
	s.categories = set
	if s.phase == PhaseIdle || s.phase == PhaseLoading {
		s.phase = PhaseReady
	}
	return s
}

// CategoriesUnavailable makes the screen ready without categories.
func (s Screen) CategoriesUnavailable() Screen {
	return s.CategoriesLoaded(CategorySet{})
}

// SelectCategory records row i of the loaded list as the current selection.
func (s Screen) SelectCategory(i int) (Screen, error) {
	if i < 0 || i >= s.categories.Len() {
		return s, fmt.Errorf("%w: %d of %d", ErrCategoryIndex, i, s.categories.Len())
	}
	s.selected = s.categories.Name(i)
	s.hasSelection = true
	return s, nil
}

// BuildRequest constructs the outgoing edit from the current form values.
// Empty (after trimming) text falls back to the original text; otherwise the
// text is sent exactly as typed. The color is always the record's own.
func (s Screen) BuildRequest(text string, date time.Time) api.EditTodoRequest {
	if strings.TrimSpace(text) == "" {
		text = s.record.Todo
	}
	return api.EditTodoRequest{
		Todo:              text,
		TodoDate:          api.FormatDate(date),
		TodoCategory:      s.Category(),
		TodoCategoryColor: s.record.CategoryColor,
	}
}

// BeginSubmit moves a ready or failed screen into the submitting phase.
func (s Screen) BeginSubmit() (Screen, error) {
	switch s.phase {
	case PhaseReady, PhaseFailed:
		s.phase = PhaseSubmitting
		s.message = ""
		return s, nil
	case PhaseSubmitting:
		return s, ErrSubmitInFlight
	case PhaseSuccess:
		return s, ErrCompleted
	default:
		return s, ErrNotReady
	}
}

// Succeeded records a successful update with the server's message.
func (s Screen) Succeeded(message string) Screen {
	s.phase = PhaseSuccess
	s.message = message
	return s
}

// Failed records a failed update with a user-facing message.
func (s Screen) Failed(message string) Screen {
	s.phase = PhaseFailed
	s.message = message
	return s
}
