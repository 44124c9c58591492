package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListTrips returns all trips owned by the authenticated user.
func (c *Client) ListTrips(ctx context.Context) ([]Trip, error) {
	var response struct {
		Trips []Trip `json:"trips"`
	}
	if err := c.do(ctx, http.MethodGet, "/trips", nil, &response); err != nil {
		return nil, err
	}
	return response.Trips, nil
}

// GetTrip fetches a single trip.
func (c *Client) GetTrip(ctx context.Context, tripID int64) (*Trip, error) {
	var response struct {
		Trip Trip `json:"trip"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d", tripID), nil, &response); err != nil {
		return nil, err
	}
	return &response.Trip, nil
}

// CreateTrip creates a trip.
func (c *Client) CreateTrip(ctx context.Context, request *TripRequest) (*Trip, error) {
	var response struct {
		Trip Trip `json:"trip"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips", request, &response); err != nil {
		return nil, err
	}
	return &response.Trip, nil
}

// UpdateTrip replaces a trip's editable fields.
func (c *Client) UpdateTrip(ctx context.Context, tripID int64, request *TripRequest) (*Trip, error) {
	var response struct {
		Trip Trip `json:"trip"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d", tripID), request, &response); err != nil {
		return nil, err
	}
	return &response.Trip, nil
}

// DeleteTrip removes a trip and its packing list.
func (c *Client) DeleteTrip(ctx context.Context, tripID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/trips/%d", tripID), nil, nil)
}

// GetPackingList fetches the packing list for a trip.
func (c *Client) GetPackingList(ctx context.Context, tripID int64) ([]Item, error) {
	var response struct {
		PackingList []Item `json:"packing_list"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d/packing-list", tripID), nil, &response); err != nil {
		return nil, err
	}
	return response.PackingList, nil
}
