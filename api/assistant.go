package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ChatHistory fetches the stored assistant conversation for a trip.
func (c *Client) ChatHistory(ctx context.Context, tripID int64) ([]ChatMessage, error) {
	var response struct {
		ChatHistory []ChatMessage `json:"chat_history"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/assistant/chat-history/%d", tripID), nil, &response); err != nil {
		return nil, err
	}
	return response.ChatHistory, nil
}

// StartTurn submits a user message along with the current draft and returns
// the correlation identifier used to attach to the event stream.
func (c *Client) StartTurn(ctx context.Context, request *TurnRequest) (int64, error) {
	var response struct {
		AssistantProcessID int64 `json:"assistant_process_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/assistant", request, &response); err != nil {
		return 0, err
	}
	return response.AssistantProcessID, nil
}

// StreamTurn opens the server-push channel for a started turn and invokes
// handle for each well-formed event, in arrival order, until the terminal
// done event or a transport failure. The done event is delivered to handle
// and then the channel is closed; nothing past it is read. Malformed event
// payloads are skipped with a log line so one bad event cannot lose the
// rest of the turn. A nil return means the turn completed; any error is a
// failure outcome, never a normal termination.
func (c *Client) StreamTurn(ctx context.Context, processID int64, handle func(StreamEvent) error) error {
	request, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/assistant?assistant_process_id=%d", processID), nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "text/event-stream")

	// The stream outlives any sane request timeout; rely on ctx instead.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	response, err := streamClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "opening assistant stream")
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return c.decodeError(response)
	}

	reader := newSSEReader(response.Body)
	for {
		payload, err := reader.next()
		if err != nil {
			if err == io.EOF {
				// Stream closed without a done event: the turn did not
				// complete cleanly.
				return errors.New("assistant stream ended before the done event")
			}
			return errors.Wrap(err, "reading assistant stream")
		}

		var event StreamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			c.log.Warn("skipping malformed assistant event", "process_id", processID, "error", err)
			continue
		}

		if err := handle(event); err != nil {
			return err
		}
		if event.Done {
			return nil
		}
	}
}

// AcceptChanges submits the full draft trip and packing list as the new
// authoritative state. There is no partial commit.
func (c *Client) AcceptChanges(ctx context.Context, request *ChangesRequest) error {
	return c.do(ctx, http.MethodPost, "/assistant/accept-changes", request, nil)
}
