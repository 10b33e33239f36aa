package devserver

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hy4ri/bubbly-todo/internal/api"
)

// NewRouter wires the todo endpoints.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK\n"))
	}).Methods("GET")
	r.HandleFunc("/category", s.GetCategoriesHandler).Methods("GET")
	r.HandleFunc("/bubbly-todo/{id}", s.GetTodoHandler).Methods("GET")
	r.HandleFunc("/bubbly-todo/update/{id}", s.UpdateTodoHandler).Methods("POST")
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get(api.RequestIDHeader)).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
