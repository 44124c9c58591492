package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/packpal/packpal/api"
)

// ErrTurnInFlight is returned when a turn is started while another is
// still streaming. One turn per session, enforced here rather than only
// by disabling the send control in the UI.
var ErrTurnInFlight = errors.New("an assistant turn is already in flight")

// TurnClient drives assistant turns: a turn-creation request followed by
// the server-push event channel for the returned correlation identifier.
type TurnClient struct {
	client *api.Client

	mu       sync.Mutex
	inFlight bool
}

// NewTurnClient builds a turn client on top of the backend client.
func NewTurnClient(client *api.Client) *TurnClient {
	return &TurnClient{client: client}
}

// InFlight reports whether a turn is currently streaming.
func (t *TurnClient) InFlight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// Run executes one complete turn: it reserves the in-flight slot, creates
// the turn, attaches to the event channel, and feeds every delivered event
// to handle in order until the terminal event or a transport failure. Run
// blocks; callers stream in the background and must funnel handle calls
// back onto their own event loop. Cancelling ctx closes the channel.
func (t *TurnClient) Run(ctx context.Context, request *api.TurnRequest, handle func(api.StreamEvent) error) error {
	t.mu.Lock()
	if t.inFlight {
		t.mu.Unlock()
		return ErrTurnInFlight
	}
	t.inFlight = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	processID, err := t.client.StartTurn(ctx, request)
	if err != nil {
		return errors.Wrap(err, "starting assistant turn")
	}
	return t.client.StreamTurn(ctx, processID, handle)
}
