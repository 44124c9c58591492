package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateItem adds an item to a trip's packing list.
func (c *Client) CreateItem(ctx context.Context, request *ItemRequest) (*Item, error) {
	var response struct {
		Item Item `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/items", request, &response); err != nil {
		return nil, err
	}
	return &response.Item, nil
}

// UpdateItem replaces an item's editable fields.
func (c *Client) UpdateItem(ctx context.Context, itemID int64, request *ItemRequest) (*Item, error) {
	var response struct {
		Item Item `json:"item"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", itemID), request, &response); err != nil {
		return nil, err
	}
	return &response.Item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", itemID), nil, nil)
}
