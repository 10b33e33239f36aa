package api

import (
	"context"
	"fmt"
)

// UpdateTodo persists an edit of the todo with the given id.
// On success it returns the server's plain-text message verbatim.
func (c *Client) UpdateTodo(ctx context.Context, id int64, req EditTodoRequest) (string, error) {
	msg, err := c.postText(ctx, fmt.Sprintf("/bubbly-todo/update/%d", id), req)
	if err != nil {
		return "", fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	return msg, nil
}

// GetTodo fetches a single todo record.
func (c *Client) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	if err := c.getJSON(ctx, fmt.Sprintf("/bubbly-todo/%d", id), &todo); err != nil {
		return nil, fmt.Errorf("failed to get todo %d: %w", id, err)
	}
	return &todo, nil
}
