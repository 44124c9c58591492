package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/packpal/packpal/internal/auth"
	"github.com/packpal/packpal/internal/debug"
)

// Error is a failure response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the PackPal backend. Credentials are injected rather than
// looked up ambiently so tests can run against fake tokens.
type Client struct {
	host        string
	credentials auth.CredentialSource
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient builds a client for the given host.
func NewClient(host string, credentials auth.CredentialSource, timeout time.Duration) *Client {
	return &Client{
		host:        strings.TrimSuffix(host, "/"),
		credentials: credentials,
		httpClient:  &http.Client{Timeout: timeout},
		log:         debug.GetLogger(),
	}
}

// newRequest builds an authenticated request with an optional JSON body.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling request body")
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.host+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	token, err := c.credentials.Token()
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+token)
	return request, nil
}

// do executes a request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	request, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return c.decodeError(response)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response body")
	}
	return nil
}

// decodeError parses the backend's `{"error": "..."}` envelope.
func (c *Client) decodeError(response *http.Response) error {
	apiError := &Error{StatusCode: response.StatusCode}

	data, err := io.ReadAll(response.Body)
	if err != nil || len(data) == 0 {
		return apiError
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiError.Message = envelope.Error
	}
	c.log.Error("backend request failed", "status", response.StatusCode, "error", apiError.Message)
	return apiError
}
