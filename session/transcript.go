package session

import (
	"strings"

	"github.com/packpal/packpal/api"
)

// Transcript is the ordered, append-only record of the conversation.
// Messages are only removed by Reset.
type Transcript struct {
	messages []api.ChatMessage
}

// NewTranscript seeds a transcript with the backend's stored chat history.
func NewTranscript(history []api.ChatMessage) *Transcript {
	messages := make([]api.ChatMessage, len(history))
	copy(messages, history)
	return &Transcript{messages: messages}
}

// AppendUser records a sent user message.
func (t *Transcript) AppendUser(content string) {
	t.messages = append(t.messages, api.ChatMessage{Role: api.RoleUser, Content: content})
}

// AppendAssistant records a received assistant message.
func (t *Transcript) AppendAssistant(content string) {
	t.messages = append(t.messages, api.ChatMessage{Role: api.RoleAssistant, Content: content})
}

// Messages returns the full log, empty-content entries included.
func (t *Transcript) Messages() []api.ChatMessage {
	messages := make([]api.ChatMessage, len(t.messages))
	copy(messages, t.messages)
	return messages
}

// Visible returns the messages worth rendering: entries whose content is
// empty or whitespace-only (typically tool messages that only carried a
// side effect) are kept in the log but skipped here.
func (t *Transcript) Visible() []api.ChatMessage {
	visible := make([]api.ChatMessage, 0, len(t.messages))
	for _, message := range t.messages {
		if strings.TrimSpace(message.Content) == "" {
			continue
		}
		visible = append(visible, message)
	}
	return visible
}

// Len returns the number of logged messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Reset clears the log.
func (t *Transcript) Reset() {
	t.messages = nil
}
