package api

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) []string {
	t.Helper()
	reader := newSSEReader(strings.NewReader(input))
	var payloads []string
	for {
		payload, err := reader.next()
		if err == io.EOF {
			return payloads
		}
		require.NoError(t, err)
		payloads = append(payloads, payload)
	}
}

func TestSSEReaderSingleEvent(t *testing.T) {
	payloads := readAll(t, "data: {\"done\": true}\n\n")
	assert.Equal(t, []string{`{"done": true}`}, payloads)
}

func TestSSEReaderMultipleEvents(t *testing.T) {
	input := "data: one\n\ndata: two\n\ndata: three\n\n"
	assert.Equal(t, []string{"one", "two", "three"}, readAll(t, input))
}

func TestSSEReaderJoinsDataLines(t *testing.T) {
	input := "data: first line\ndata: second line\n\n"
	assert.Equal(t, []string{"first line\nsecond line"}, readAll(t, input))
}

func TestSSEReaderSkipsCommentsAndOtherFields(t *testing.T) {
	input := ": keep-alive\nevent: message\nid: 12\nretry: 3000\ndata: payload\n\n"
	assert.Equal(t, []string{"payload"}, readAll(t, input))
}

func TestSSEReaderStripsOneLeadingSpace(t *testing.T) {
	assert.Equal(t, []string{" padded"}, readAll(t, "data:  padded\n\n"))
	assert.Equal(t, []string{"bare"}, readAll(t, "data:bare\n\n"))
}

func TestSSEReaderHandlesCarriageReturns(t *testing.T) {
	input := "data: one\r\n\r\ndata: two\r\n\r\n"
	assert.Equal(t, []string{"one", "two"}, readAll(t, input))
}

func TestSSEReaderPartialFinalLine(t *testing.T) {
	// A stream cut mid-event still yields the data it carried.
	assert.Equal(t, []string{"unterminated"}, readAll(t, "data: unterminated"))
}

func TestSSEReaderEmptyStream(t *testing.T) {
	assert.Empty(t, readAll(t, ""))
	assert.Empty(t, readAll(t, "\n\n\n"))
}

func TestSSEReaderStickyError(t *testing.T) {
	reader := newSSEReader(strings.NewReader("data: one\n\n"))
	payload, err := reader.next()
	require.NoError(t, err)
	assert.Equal(t, "one", payload)

	_, err = reader.next()
	assert.Equal(t, io.EOF, err)
	_, err = reader.next()
	assert.Equal(t, io.EOF, err)
}
