package edit

import (
	"context"

	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/rs/zerolog"
)

// FallbackRejectMessage is shown when the server rejects an update without a body.
const FallbackRejectMessage = "unable to update todo"

// Service is the subset of the API the edit flow needs.
type Service interface {
	GetCategories(ctx context.Context) ([]api.Category, error)
	UpdateTodo(ctx context.Context, id int64, req api.EditTodoRequest) (string, error)
}

// Result is the outcome of a submit as shown to the user.
type Result struct {
	OK      bool
	Message string
}

// Flow runs the network side of the edit screen.
type Flow struct {
	svc    Service
	logger zerolog.Logger
}

// NewFlow creates a Flow backed by svc.
func NewFlow(svc Service, logger zerolog.Logger) *Flow {
	return &Flow{svc: svc, logger: logger}
}

// LoadCategories fetches the category list. Failures are logged and produce
// an empty set; the error is still returned for callers that care.
func (f *Flow) LoadCategories(ctx context.Context) (CategorySet, error) {
	categories, err := f.svc.GetCategories(ctx)
	if err != nil {
		evt := f.logger.Error().Err(err)
		switch {
		case isDecodeErr(err):
			evt = evt.Str("kind", "decode")
		case isNetworkErr(err):
			evt = evt.Str("kind", "network")
		}
		evt.Msg("error fetching categories")
		return CategorySet{}, err
	}

	set := NewCategorySet(categories)
	f.logger.Debug().Strs("categories", set.Names()).Msg("fetched categories")
	return set, nil
}

// Submit sends exactly one update request and maps the outcome to a Result.
func (f *Flow) Submit(ctx context.Context, id int64, req api.EditTodoRequest) Result {
	f.logger.Info().
		Int64("id", id).
		Str("todo", req.Todo).
		Str("date", req.TodoDate).
		Str("category", req.TodoCategory).
		Msg("submitting todo update")

	msg, err := f.svc.UpdateTodo(ctx, id, req)
	if err == nil {
		return Result{OK: true, Message: msg}
	}

	if apiErr, ok := api.IsAPIError(err); ok {
		f.logger.Warn().Int("status", apiErr.StatusCode).Str("body", apiErr.Message).Msg("update rejected")
		if apiErr.Message == "" {
			return Result{Message: FallbackRejectMessage}
		}
		return Result{Message: apiErr.Message}
	}

	f.logger.Error().Err(err).Msg("error updating todo")
	cause := err
	if netErr, ok := api.IsNetworkError(err); ok {
		cause = netErr.Err
	}
	return Result{Message: "update failed: " + cause.Error()}
}

func isDecodeErr(err error) bool {
	_, ok := api.IsDecodeError(err)
	return ok
}

func isNetworkErr(err error) bool {
	_, ok := api.IsNetworkError(err)
	return ok
}
