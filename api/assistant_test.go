package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseEvent(event StreamEvent) string {
	payload, _ := json.Marshal(event)
	return fmt.Sprintf("data: %s\n\n", payload)
}

func TestStartTurn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/assistant", r.URL.Path)

		var request TurnRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "add sunscreen", request.Message)
		assert.Equal(t, "Lisbon", request.Trip.Name)
		require.Len(t, request.PackingList, 1)

		json.NewEncoder(w).Encode(map[string]any{"assistant_process_id": 1234})
	})

	processID, err := client.StartTurn(context.Background(), &TurnRequest{
		Message:     "add sunscreen",
		Trip:        Trip{ID: 7, Name: "Lisbon"},
		PackingList: []Item{{Name: "Passport", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1234), processID)
}

func TestStreamTurnDeliversEventsInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assistant", r.URL.Path)
		assert.Equal(t, "1234", r.URL.Query().Get("assistant_process_id"))
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseEvent(StreamEvent{Message: ChatMessage{Role: RoleAssistant, Content: "Adding sunscreen."}}))
		fmt.Fprint(w, sseEvent(StreamEvent{
			Message:     ChatMessage{Role: RoleTool},
			PackingList: []Item{{Name: "Sunscreen", Quantity: 1}},
		}))
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
	})

	var events []StreamEvent
	err := client.StreamTurn(context.Background(), 1234, func(event StreamEvent) error {
		events = append(events, event)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, RoleAssistant, events[0].Message.Role)
	assert.Equal(t, "Adding sunscreen.", events[0].Message.Content)
	assert.Equal(t, RoleTool, events[1].Message.Role)
	require.Len(t, events[1].PackingList, 1)
	assert.True(t, events[2].Done)
}

func TestStreamTurnSkipsMalformedEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {not json\n\n")
		fmt.Fprint(w, sseEvent(StreamEvent{Message: ChatMessage{Role: RoleAssistant, Content: "Still here."}}))
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
	})

	var events []StreamEvent
	err := client.StreamTurn(context.Background(), 1, func(event StreamEvent) error {
		events = append(events, event)
		return nil
	})
	require.NoError(t, err)

	// The malformed event is dropped, the rest of the turn survives.
	require.Len(t, events, 2)
	assert.Equal(t, "Still here.", events[0].Message.Content)
	assert.True(t, events[1].Done)
}

func TestStreamTurnStopsAtDone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
		fmt.Fprint(w, sseEvent(StreamEvent{Message: ChatMessage{Role: RoleAssistant, Content: "after the end"}}))
	})

	var events []StreamEvent
	err := client.StreamTurn(context.Background(), 1, func(event StreamEvent) error {
		events = append(events, event)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
}

func TestStreamTurnWithoutDoneIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseEvent(StreamEvent{Message: ChatMessage{Role: RoleAssistant, Content: "and then silence"}}))
	})

	err := client.StreamTurn(context.Background(), 1, func(event StreamEvent) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "done event")
}

func TestStreamTurnPropagatesHandlerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseEvent(StreamEvent{Message: ChatMessage{Role: RoleAssistant, Content: "one"}}))
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
	})

	handlerErr := fmt.Errorf("handler rejected the event")
	err := client.StreamTurn(context.Background(), 1, func(event StreamEvent) error { return handlerErr })
	assert.Equal(t, handlerErr, err)
}

func TestStreamTurnErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "unknown assistant process"}`))
	})

	err := client.StreamTurn(context.Background(), 404, func(event StreamEvent) error { return nil })
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAcceptChanges(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/assistant/accept-changes", r.URL.Path)

		var request ChangesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Lisbon", request.Trip.Name)
		require.Len(t, request.PackingList, 2)

		w.WriteHeader(http.StatusOK)
	})

	err := client.AcceptChanges(context.Background(), &ChangesRequest{
		Trip: Trip{ID: 7, Name: "Lisbon"},
		PackingList: []Item{
			{Name: "Passport", Quantity: 1},
			{Name: "Sunscreen", Quantity: 2},
		},
	})
	require.NoError(t, err)
}

func TestChatHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assistant/chat-history/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"chat_history": []ChatMessage{
				{Role: RoleUser, Content: "pack for rain"},
				{Role: RoleAssistant, Content: "Added a rain jacket."},
			},
		})
	})

	history, err := client.ChatHistory(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
}
