package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packpal/packpal/internal/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, auth.StaticToken("test-token"), 5*time.Second)
}

func TestClientSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"trips": []Trip{}})
	})

	_, err := client.ListTrips(context.Background())
	require.NoError(t, err)
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "trip not found"}`))
	})

	_, err := client.GetTrip(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "trip not found")
}

func TestClientErrorWithoutEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListTrips(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientRefusesWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	})
	client.credentials = auth.NewFileStore(t.TempDir() + "/missing.json")

	_, err := client.ListTrips(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestGetTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/trips/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"trip": Trip{ID: 7, Name: "Lisbon", StartDate: "2026-05-01", EndDate: "2026-05-08"},
		})
	})

	trip, err := client.GetTrip(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", trip.Name)
	assert.Equal(t, int64(7), trip.ID)
}

func TestGetPackingList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips/7/packing-list", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"packing_list": []Item{
				{ID: 1, TripID: 7, Name: "Passport", Quantity: 1},
				{ID: 2, TripID: 7, Name: "Sunscreen", Quantity: 2, Packed: true},
			},
		})
	})

	items, err := client.GetPackingList(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sunscreen", items[1].Name)
	assert.True(t, items[1].Packed)
}

func TestCreateTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trips", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request TripRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Lisbon", request.Name)

		json.NewEncoder(w).Encode(map[string]any{
			"trip": Trip{ID: 42, Name: request.Name, StartDate: request.StartDate, EndDate: request.EndDate},
		})
	})

	trip, err := client.CreateTrip(context.Background(), &TripRequest{
		Name:      "Lisbon",
		StartDate: "2026-05-01",
		EndDate:   "2026-05-08",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), trip.ID)
}

func TestDeleteItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/items/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteItem(context.Background(), 3))
}
