// Package devserver is a local implementation of the todo server used for
// development and integration tests.
package devserver

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/hy4ri/bubbly-todo/internal/api"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

var (
	ErrNotFound        = errors.New("todo not found")
	ErrUnknownCategory = errors.New("unknown category")
)

// Store keeps categories and todos in SQLite.
type Store struct {
	conn *sql.DB
}

// OpenStore connects to the sqlite database at dsn and creates the tables
// if they are missing.
func OpenStore(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", dsn, err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error running schema sql: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// AddCategory inserts a category and returns its id.
func (s *Store) AddCategory(ctx context.Context, name string, color *string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `INSERT INTO category (name, color) VALUES (?, ?)`, name, nullString(color))
	if err != nil {
		return 0, fmt.Errorf("error inserting category %q: %w", name, err)
	}
	return res.LastInsertId()
}

// AddTodo inserts a todo. A zero ID lets the database pick one.
func (s *Store) AddTodo(ctx context.Context, todo api.Todo) (int64, error) {
	var id interface{}
	if todo.ID != 0 {
		id = todo.ID
	}
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO todo (id, text, date, category, color) VALUES (?, ?, ?, ?, ?)`,
		id, todo.Todo, todo.TodoDate, todo.TodoCategory, nullString(todo.CategoryColor))
	if err != nil {
		return 0, fmt.Errorf("error inserting todo: %w", err)
	}
	return res.LastInsertId()
}

// Categories returns all categories ordered by id.
func (s *Store) Categories(ctx context.Context) ([]api.Category, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, color FROM category ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error loading categories: %w", err)
	}
	defer rows.Close()

	categories := []api.Category{}
	for rows.Next() {
		var (
			id    int64
			c     api.Category
			color sql.NullString
		)
		if err := rows.Scan(&id, &c.Category, &color); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		c.CategoryID = &id
		c.CategoryColor = stringPtr(color)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning categories: %w", err)
	}
	return categories, nil
}

// Todo returns the todo with id.
func (s *Store) Todo(ctx context.Context, id int64) (api.Todo, error) {
	var (
		t     api.Todo
		color sql.NullString
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, text, date, category, color FROM todo WHERE id = ?`, id).
		Scan(&t.ID, &t.Todo, &t.TodoDate, &t.TodoCategory, &color)
	if errors.Is(err, sql.ErrNoRows) {
		return api.Todo{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return api.Todo{}, fmt.Errorf("error loading todo %d: %w", id, err)
	}
	t.CategoryColor = stringPtr(color)
	return t, nil
}

// UpdateTodo replaces the editable fields of todo id.
func (s *Store) UpdateTodo(ctx context.Context, id int64, req api.EditTodoRequest) error {
	var n int
	if err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM category WHERE name = ?`, req.TodoCategory).Scan(&n); err != nil {
		return fmt.Errorf("error checking category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, req.TodoCategory)
	}

	res, err := s.conn.ExecContext(ctx,
		`UPDATE todo SET text = ?, date = ?, category = ?, color = ?, updated_at = ? WHERE id = ?`,
		req.Todo, req.TodoDate, req.TodoCategory, nullString(req.TodoCategoryColor),
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("error updating todo %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating todo %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Seed fills an empty store with sample data.
func (s *Store) Seed(ctx context.Context) error {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM category`).Scan(&n); err != nil {
		return fmt.Errorf("error checking seed state: %w", err)
	}
	if n > 0 {
		return nil
	}

	categories := []struct {
		name  string
		color *string
	}{
		{"Errands", api.StringPtr("#ff0000")},
		{"Work", api.StringPtr("#3b82f6")},
		{"Home", api.StringPtr("#22c55e")},
		{"Someday", nil},
	}
	for _, c := range categories {
		if _, err := s.AddCategory(ctx, c.name, c.color); err != nil {
			return err
		}
	}

	todos := []api.Todo{
		{ID: 42, Todo: "Buy milk", TodoDate: "2024-09-10", TodoCategory: "Errands", CategoryColor: api.StringPtr("#ff0000")},
		{ID: 43, Todo: "Write report", TodoDate: "2024-09-11", TodoCategory: "Work", CategoryColor: api.StringPtr("#3b82f6")},
		{ID: 44, Todo: "Fix the tap", TodoDate: "2024-09-14", TodoCategory: "Home", CategoryColor: api.StringPtr("#22c55e")},
	}
	for _, t := range todos {
		if _, err := s.AddTodo(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
