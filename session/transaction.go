package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/draft"
	"github.com/packpal/packpal/internal/debug"
)

// State of the confirm/cancel transaction.
type State int

// Transaction states. Editing is the working state; Committed and Discarded
// are terminal.
const (
	Editing State = iota
	ConfirmPending
	CancelPending
	Committing
	Committed
	Discarded
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case ConfirmPending:
		return "confirm-pending"
	case CancelPending:
		return "cancel-pending"
	case Committing:
		return "committing"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Transaction owns the only path by which draft state becomes durable. The
// draft is submitted whole on commit; there is no per-item incremental sync.
// Commit runs off the UI loop while the loop keeps reading State, so state
// access is locked.
type Transaction struct {
	client *api.Client
	log    *slog.Logger

	mu    sync.Mutex
	state State
}

// NewTransaction starts a transaction in the Editing state.
func NewTransaction(client *api.Client) *Transaction {
	return &Transaction{
		client: client,
		log:    debug.GetLogger(),
	}
}

// State returns the current state.
func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// RequestConfirm moves Editing to ConfirmPending (the confirmation prompt).
func (t *Transaction) RequestConfirm() error {
	return t.transition(Editing, ConfirmPending)
}

// RequestCancel moves Editing to CancelPending (the discard warning).
func (t *Transaction) RequestCancel() error {
	return t.transition(Editing, CancelPending)
}

// Dismiss returns from either pending state to Editing.
func (t *Transaction) Dismiss() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != ConfirmPending && t.state != CancelPending {
		return errors.Errorf("cannot dismiss from state %s", t.state)
	}
	t.setStateLocked(Editing)
	return nil
}

// Commit submits the draft as the new authoritative state. On success the
// transaction is Committed and terminal. On failure it returns to Editing
// with the draft untouched so no work is lost; retrying is up to the user.
func (t *Transaction) Commit(ctx context.Context, snapshot draft.Snapshot) error {
	if err := t.transition(ConfirmPending, Committing); err != nil {
		return err
	}

	request := &api.ChangesRequest{
		Trip:        snapshot.Trip,
		PackingList: snapshot.PackingList(),
	}
	if err := t.client.AcceptChanges(ctx, request); err != nil {
		t.log.Error("commit failed", "trip_id", snapshot.Trip.ID, "error", err)
		t.setState(Editing)
		return errors.Wrap(err, "accepting changes")
	}

	t.setState(Committed)
	return nil
}

// Discard abandons the draft. Terminal; nothing is persisted.
func (t *Transaction) Discard() error {
	return t.transition(CancelPending, Discarded)
}

// Terminal reports whether the transaction has ended.
func (t *Transaction) Terminal() bool {
	state := t.State()
	return state == Committed || state == Discarded
}

func (t *Transaction) transition(from, to State) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return errors.Errorf("cannot move to %s from %s", to, t.state)
	}
	t.setStateLocked(to)
	return nil
}

func (t *Transaction) setState(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setStateLocked(state)
}

// setStateLocked requires mu to be held.
func (t *Transaction) setStateLocked(state State) {
	t.log.Debug("transaction state change", "from", t.state.String(), "to", state.String())
	t.state = state
}
