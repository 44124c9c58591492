package assistant

import (
	"context"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/packpal/packpal/api"
)

// streamEventMsg carries one delivered assistant event onto the UI loop.
type streamEventMsg struct {
	event api.StreamEvent
}

// streamDoneMsg reports the outcome of a turn. A nil err is a clean
// completion; anything else is a transport failure.
type streamDoneMsg struct {
	err error
}

// commitResultMsg reports the outcome of the accept-changes submission.
type commitResultMsg struct {
	err error
}

// journalErrorMsg reports a failed draft autosave.
type journalErrorMsg struct {
	err error
}

// sendMessage starts an assistant turn from the textarea content.
func (m *Model) sendMessage() tea.Cmd {
	userInput := strings.TrimSpace(m.textarea.Value())
	if userInput == "" {
		return nil
	}

	request, err := m.session.BeginTurn(userInput)
	if err != nil {
		// The send control is disabled while streaming, but the session
		// enforces the invariant on its own.
		m.err = err
		return nil
	}

	m.history.Add(userInput)
	m.historyNavigating = false
	m.session.NewTurnDispatcher()
	m.textarea.Reset()

	m.streaming = true
	m.recalculateLayout()
	m.refreshChat()
	m.chatViewport.GotoBottom()

	return tea.Batch(m.startStreaming(request), m.spinner.Tick)
}

// startStreaming runs the turn on a goroutine, funneling every event back
// onto the UI loop via program.Send so the draft is only ever mutated from
// the event loop.
func (m *Model) startStreaming(request *api.TurnRequest) tea.Cmd {
	streamCtx, cancel := context.WithCancel(m.ctx)
	m.cancelStream = cancel

	p := m.getProgram()
	if p == nil {
		return func() tea.Msg {
			return streamDoneMsg{err: errors.New("program not set")}
		}
	}

	turn := m.session.Turn()
	go func() {
		err := turn.Run(streamCtx, request, func(event api.StreamEvent) error {
			p.Send(streamEventMsg{event: event})
			return nil
		})
		p.Send(streamDoneMsg{err: err})
	}()

	return nil
}

// commit submits the draft through the transaction.
func (m *Model) commit() tea.Cmd {
	snapshot := m.session.Snapshot()
	txn := m.session.Transaction()
	return func() tea.Msg {
		return commitResultMsg{err: txn.Commit(m.ctx, snapshot)}
	}
}

// saveJournal autosaves the draft so an interrupted session can be resumed.
func (m *Model) saveJournal() tea.Cmd {
	if m.journal == nil {
		return nil
	}
	snapshot := m.session.Snapshot()
	tripID := m.session.TripID
	journal := m.journal
	return func() tea.Msg {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return journalErrorMsg{err: errors.Wrap(err, "marshaling draft")}
		}
		if err := journal.Save(tripID, payload); err != nil {
			return journalErrorMsg{err: err}
		}
		return nil
	}
}

// clearJournal removes the autosaved draft after commit or discard.
func (m *Model) clearJournal() {
	if m.journal == nil {
		return
	}
	if err := m.journal.Delete(m.session.TripID); err != nil {
		log.Error("clearing draft journal", "trip_id", m.session.TripID, "error", err)
	}
}
