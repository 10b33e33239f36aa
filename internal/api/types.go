// Package api provides a client for the bubbly-todo REST API.
package api

import (
	"time"
)

// DateLayout is the wire format of todo dates (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// Todo represents a todo record as received from the server.
type Todo struct {
	ID            int64   `json:"id"`
	Todo          string  `json:"todo"`
	TodoDate      string  `json:"todoDate"`
	TodoCategory  string  `json:"todoCategory"`
	CategoryColor *string `json:"todoCategoryColor"`
}

// Category represents a named, colored tag selectable for a todo.
type Category struct {
	Category      string  `json:"category"`
	CategoryColor *string `json:"categoryColor"`
	CategoryID    *int64  `json:"categoryId"`
}

// EditTodoRequest represents the request body for updating a todo.
type EditTodoRequest struct {
	Todo              string  `json:"todo"`
	TodoDate          string  `json:"todoDate"`
	TodoCategory      string  `json:"todoCategory"`
	TodoCategoryColor *string `json:"todoCategoryColor"`
}

// Date parses the record's date. The second result is false if the date
// is missing or not in yyyy-MM-dd form.
func (t *Todo) Date() (time.Time, bool) {
	d, err := ParseDate(t.TodoDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ColorString returns the record's category color, or "" if it has none.
func (t *Todo) ColorString() string {
	if t.CategoryColor == nil {
		return ""
	}
	return *t.CategoryColor
}

// ParseDate parses a yyyy-MM-dd date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// FormatDate formats a date as yyyy-MM-dd. The time of day is dropped.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
