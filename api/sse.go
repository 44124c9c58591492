package api

import (
	"bufio"
	"io"
	"strings"
)

// sseReader decodes server-sent events from a response body. The backend
// emits only default-typed events ("data:" lines terminated by a blank
// line), but parsing follows the SSE field rules so comment lines, event
// ids, and unknown fields do not confuse the stream.
type sseReader struct {
	reader *bufio.Reader
	err    error
}

func newSSEReader(r io.Reader) *sseReader {
	return &sseReader{reader: bufio.NewReaderSize(r, 32*1024)}
}

// next returns the payload of the next event. It returns io.EOF once the
// stream is exhausted; any other error is a transport failure.
func (s *sseReader) next() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	var dataLines []string
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			s.err = err
			// A partial final line still counts if it carried data.
			line = strings.TrimRight(line, "\r\n")
			if data, ok := parseSSEField(line); ok {
				dataLines = append(dataLines, data)
			}
			if len(dataLines) > 0 {
				return strings.Join(dataLines, "\n"), nil
			}
			return "", s.err
		}

		line = strings.TrimRight(line, "\r\n")

		// Blank line closes the event.
		if line == "" {
			if len(dataLines) > 0 {
				return strings.Join(dataLines, "\n"), nil
			}
			continue
		}

		if data, ok := parseSSEField(line); ok {
			dataLines = append(dataLines, data)
		}
	}
}

// parseSSEField extracts the value of a "data" field line. Comments and
// other fields (event, id, retry, anything unknown) are skipped.
func parseSSEField(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}
	field, value, hasColon := strings.Cut(line, ":")
	if !hasColon {
		field, value = line, ""
	} else {
		// If the value starts with a space, exactly one is stripped.
		value = strings.TrimPrefix(value, " ")
	}
	if field != "data" {
		return "", false
	}
	return value, true
}
