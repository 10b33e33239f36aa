package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/rs/zerolog"
)

// UpdatedMessage is the body of a successful update.
const UpdatedMessage = "Updated successfully"

// Server serves the todo endpoints from a Store.
type Server struct {
	store  *Store
	logger zerolog.Logger
}

// NewServer creates a Server backed by store.
func NewServer(store *Store, logger zerolog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// GetCategoriesHandler returns every category as a JSON array.
func (s *Server) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		textError(w, "failed to list categories", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write categories")
	}
}

// GetTodoHandler returns one todo as JSON.
func (s *Server) GetTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := s.store.Todo(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		textError(w, fmt.Sprintf("todo %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to load todo")
		textError(w, "failed to load todo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(todo); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("failed to write todo")
	}
}

// UpdateTodoHandler applies an edit and answers with a plain-text message.
func (s *Server) UpdateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req api.EditTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		textError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Todo) == "" {
		textError(w, "todo must not be empty", http.StatusBadRequest)
		return
	}
	if _, err := api.ParseDate(req.TodoDate); err != nil {
		textError(w, fmt.Sprintf("invalid todoDate %q", req.TodoDate), http.StatusBadRequest)
		return
	}

	err := s.store.UpdateTodo(r.Context(), id, req)
	switch {
	case errors.Is(err, ErrNotFound):
		textError(w, fmt.Sprintf("todo %d not found", id), http.StatusNotFound)
		return
	case errors.Is(err, ErrUnknownCategory):
		textError(w, fmt.Sprintf("unknown category %q", req.TodoCategory), http.StatusBadRequest)
		return
	case err != nil:
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update todo")
		textError(w, "failed to update todo", http.StatusInternalServerError)
		return
	}

	s.logger.Info().Int64("id", id).Str("category", req.TodoCategory).Msg("todo updated")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(UpdatedMessage))
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		textError(w, "invalid todo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// textError writes msg as the whole plain-text body, without the trailing
// newline http.Error appends, so clients can show it verbatim.
func textError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
