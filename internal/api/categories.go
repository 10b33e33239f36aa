package api

import (
	"context"
	"fmt"
)

// GetCategories returns all categories in server order.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/category", &categories); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}
