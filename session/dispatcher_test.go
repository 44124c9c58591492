package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packpal/packpal/api"
)

type toolCall struct {
	trip  *api.Trip
	items []api.Item
}

func newTestDispatcher() (*Dispatcher, *Transcript, *[]toolCall) {
	transcript := NewTranscript(nil)
	var calls []toolCall
	dispatcher := NewDispatcher(transcript, func(trip *api.Trip, items []api.Item) {
		calls = append(calls, toolCall{trip: trip, items: items})
	})
	return dispatcher, transcript, &calls
}

func TestDispatcherAppendsAssistantMessages(t *testing.T) {
	dispatcher, transcript, _ := newTestDispatcher()

	dispatcher.Apply(api.StreamEvent{Message: api.ChatMessage{Role: api.RoleAssistant, Content: "Adding sunscreen."}})
	dispatcher.Apply(api.StreamEvent{Message: api.ChatMessage{Role: api.RoleAssistant, Content: "Done."}})

	messages := transcript.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Adding sunscreen.", messages[0].Content)
	assert.Equal(t, "Done.", messages[1].Content)
}

func TestDispatcherSkipsEmptyAssistantMessages(t *testing.T) {
	dispatcher, transcript, _ := newTestDispatcher()

	dispatcher.Apply(api.StreamEvent{Message: api.ChatMessage{Role: api.RoleAssistant, Content: ""}})
	assert.Zero(t, transcript.Len())
}

func TestDispatcherRoutesToolEvents(t *testing.T) {
	dispatcher, transcript, calls := newTestDispatcher()

	dispatcher.Apply(api.StreamEvent{
		Message:     api.ChatMessage{Role: api.RoleTool},
		Trip:        &api.Trip{Name: "Lisbon"},
		PackingList: []api.Item{{Name: "Sunscreen", Quantity: 1}},
	})

	require.Len(t, *calls, 1)
	assert.Equal(t, "Lisbon", (*calls)[0].trip.Name)
	require.Len(t, (*calls)[0].items, 1)
	assert.Zero(t, transcript.Len())
}

func TestDispatcherToolEventsApplyInOrder(t *testing.T) {
	dispatcher, _, calls := newTestDispatcher()

	for _, name := range []string{"A", "B", "C"} {
		dispatcher.Apply(api.StreamEvent{
			Message:     api.ChatMessage{Role: api.RoleTool},
			PackingList: []api.Item{{Name: name, Quantity: 1}},
		})
	}

	require.Len(t, *calls, 3)
	assert.Equal(t, "C", (*calls)[2].items[0].Name)
}

func TestDispatcherDoneLatch(t *testing.T) {
	dispatcher, transcript, calls := newTestDispatcher()

	assert.False(t, dispatcher.Done())
	dispatcher.Apply(api.StreamEvent{Done: true})
	assert.True(t, dispatcher.Done())

	// Anything after the terminal event is discarded.
	dispatcher.Apply(api.StreamEvent{Message: api.ChatMessage{Role: api.RoleAssistant, Content: "late"}})
	dispatcher.Apply(api.StreamEvent{
		Message:     api.ChatMessage{Role: api.RoleTool},
		PackingList: []api.Item{{Name: "late item"}},
	})

	assert.Zero(t, transcript.Len())
	assert.Empty(t, *calls)
}

func TestDispatcherIgnoresUnknownRoles(t *testing.T) {
	dispatcher, transcript, calls := newTestDispatcher()

	dispatcher.Apply(api.StreamEvent{Message: api.ChatMessage{Role: "system", Content: "internal"}})

	assert.Zero(t, transcript.Len())
	assert.Empty(t, *calls)
	assert.False(t, dispatcher.Done())
}

func TestTranscriptVisible(t *testing.T) {
	transcript := NewTranscript([]api.ChatMessage{
		{Role: api.RoleUser, Content: "pack for rain"},
		{Role: api.RoleAssistant, Content: "   "},
		{Role: api.RoleAssistant, Content: "Added a rain jacket."},
	})

	visible := transcript.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "pack for rain", visible[0].Content)
	assert.Equal(t, "Added a rain jacket.", visible[1].Content)

	assert.Equal(t, 3, transcript.Len())
}

func TestTranscriptAppend(t *testing.T) {
	transcript := NewTranscript(nil)
	transcript.AppendUser("hello")
	transcript.AppendAssistant("hi there")

	messages := transcript.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, api.RoleUser, messages[0].Role)
	assert.Equal(t, api.RoleAssistant, messages[1].Role)

	// Messages returns a copy.
	messages[0].Content = "mutated"
	assert.Equal(t, "hello", transcript.Messages()[0].Content)
}
