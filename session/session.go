// Package session implements the assistant-driven collaborative edit
// session: a draft copy of a trip and its packing list mutated by both
// direct user edits and streamed assistant tool effects, reconciled against
// the authoritative backend copy through an explicit confirm/cancel
// transaction.
//
// Concurrency model: the draft is mutated from exactly two call sites — the
// UI's edit handlers and the dispatcher — and both must run on the UI event
// loop. The turn's streaming goroutine never touches the draft directly; it
// hands events back to the loop, which applies them in arrival order.
package session

import (
	"context"

	"github.com/pkg/errors"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/draft"
)

// Session is the process-scoped state for one assistant page visit.
type Session struct {
	TripID int64

	snapshot   draft.Snapshot
	original   draft.Snapshot
	transcript *Transcript
	dispatcher *Dispatcher
	turn       *TurnClient
	txn        *Transaction
}

// Load fetches the trip, packing list, and chat history, and initializes
// the session with a draft copy of the editable state.
func Load(ctx context.Context, client *api.Client, tripID int64) (*Session, error) {
	trip, err := client.GetTrip(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching trip")
	}
	packingList, err := client.GetPackingList(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching packing list")
	}
	history, err := client.ChatHistory(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching chat history")
	}

	snapshot := draft.New(*trip, packingList)
	s := &Session{
		TripID:     tripID,
		snapshot:   snapshot,
		original:   snapshot,
		transcript: NewTranscript(history),
		turn:       NewTurnClient(client),
		txn:        NewTransaction(client),
	}
	s.dispatcher = NewDispatcher(s.transcript, func(trip *api.Trip, items []api.Item) {
		s.snapshot = s.snapshot.ReplaceAll(trip, items)
	})
	return s, nil
}

// Resume is Load with the draft replaced by a recovered snapshot (from the
// local journal) instead of the backend copy.
func Resume(ctx context.Context, client *api.Client, tripID int64, recovered draft.Snapshot) (*Session, error) {
	s, err := Load(ctx, client, tripID)
	if err != nil {
		return nil, err
	}
	s.snapshot = recovered
	return s, nil
}

// Snapshot returns the current draft.
func (s *Session) Snapshot() draft.Snapshot {
	return s.snapshot
}

// SetSnapshot replaces the draft. Used by the UI's direct-edit handlers,
// which compute the new snapshot via the draft package's pure operations.
func (s *Session) SetSnapshot(snapshot draft.Snapshot) {
	s.snapshot = snapshot
}

// Original returns the state as fetched at session start, for change summaries.
func (s *Session) Original() draft.Snapshot {
	return s.original
}

// Transcript returns the conversation log.
func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Transaction returns the confirm/cancel state machine.
func (s *Session) Transaction() *Transaction {
	return s.txn
}

// Turn returns the stream client.
func (s *Session) Turn() *TurnClient {
	return s.turn
}

// BeginTurn records the user message in the transcript and builds the turn
// request from the current draft. It fails with ErrTurnInFlight while a
// turn is streaming — the UI disables the send control, but the invariant
// does not depend on it.
func (s *Session) BeginTurn(message string) (*api.TurnRequest, error) {
	if s.turn.InFlight() {
		return nil, ErrTurnInFlight
	}
	s.transcript.AppendUser(message)
	return &api.TurnRequest{
		Message:     message,
		Trip:        s.snapshot.Trip,
		PackingList: s.snapshot.PackingList(),
	}, nil
}

// Dispatch applies one streamed event. Must be called on the UI event loop.
func (s *Session) Dispatch(event api.StreamEvent) {
	s.dispatcher.Apply(event)
}

// NewTurnDispatcher resets the per-turn terminal latch. Each turn has its
// own done event, so a fresh dispatcher is attached when a turn starts.
func (s *Session) NewTurnDispatcher() {
	s.dispatcher = NewDispatcher(s.transcript, func(trip *api.Trip, items []api.Item) {
		s.snapshot = s.snapshot.ReplaceAll(trip, items)
	})
}

// Teardown clears session state. Called after the transaction reaches a
// terminal state or on navigation away.
func (s *Session) Teardown() {
	s.transcript.Reset()
	s.snapshot = draft.Snapshot{}
}
