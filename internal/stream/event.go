// Package stream reads the JSONL transcript a detached assistant appends to.
// Only the type discriminator of each record is decoded; payloads stay raw
// so this layer never has to understand any particular assistant's schema.
package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Event is one record from a transcript. Type is empty when the line was not
// a JSON object with a "type" field; Raw always carries the full line.
type Event struct {
	Type string
	Raw  []byte
}

func parseEvent(line []byte) Event {
	raw := append([]byte(nil), line...)

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{Raw: raw}
	}
	return Event{Type: env.Type, Raw: raw}
}

// ReadAll decodes every complete line currently in the transcript. A trailing
// line without a newline is still being appended by the child and is skipped.
func ReadAll(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var events []Event
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimRight(data[:i], "\r")
		data = data[i+1:]
		if len(line) == 0 {
			continue
		}
		events = append(events, parseEvent(line))
	}
	return events, nil
}
