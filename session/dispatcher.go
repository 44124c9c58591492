package session

import (
	"log/slog"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/internal/debug"
)

// Dispatcher interprets streamed events and routes each to the transcript
// (assistant text) or the draft (tool effects). Events must be applied in
// arrival order: each tool effect wholesale supersedes the previous draft
// state, so reordering would silently revert an assistant edit.
type Dispatcher struct {
	transcript *Transcript
	applyTool  func(trip *api.Trip, items []api.Item)
	done       bool
	log        *slog.Logger
}

// NewDispatcher builds a dispatcher. applyTool receives tool-effect payloads
// and is expected to replace the draft state.
func NewDispatcher(transcript *Transcript, applyTool func(trip *api.Trip, items []api.Item)) *Dispatcher {
	return &Dispatcher{
		transcript: transcript,
		applyTool:  applyTool,
		log:        debug.GetLogger(),
	}
}

// Apply routes one event. Once the terminal event has been seen, anything
// further on the channel is discarded — an erroneously delivered trailing
// event must not mutate the session.
func (d *Dispatcher) Apply(event api.StreamEvent) {
	if d.done {
		d.log.Warn("discarding event received after turn completion")
		return
	}
	if event.Done {
		d.done = true
		return
	}

	switch event.Message.Role {
	case api.RoleAssistant:
		if event.Message.Content != "" {
			d.transcript.AppendAssistant(event.Message.Content)
		}
	case api.RoleTool:
		d.applyTool(event.Trip, event.PackingList)
	default:
		// Unknown roles and shapes are ignored so a newer backend cannot
		// crash the session.
		d.log.Warn("ignoring event with unknown role", "role", string(event.Message.Role))
	}
}

// Done reports whether the terminal event has been seen.
func (d *Dispatcher) Done() bool {
	return d.done
}
