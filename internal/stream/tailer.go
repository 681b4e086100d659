package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultPollInterval is how often the tailer re-checks the transcript for
// appended data when none was pending.
const DefaultPollInterval = 500 * time.Millisecond

// Tailer follows a transcript file that a detached process appends to. It
// emits only complete (newline-terminated) lines, so a record the child is
// mid-write on is never delivered early.
type Tailer struct {
	path     string
	interval time.Duration
}

// NewTailer creates a tailer for the transcript at path. A non-positive
// interval selects DefaultPollInterval.
func NewTailer(path string, interval time.Duration) *Tailer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tailer{path: path, interval: interval}
}

// Follow sends transcript events in file order until ctx is cancelled,
// returning the cancellation cause. Existing content is delivered first,
// then appended records as they land. The transcript must already exist
// (the launcher writes its header before any child is spawned).
func (t *Tailer) Follow(ctx context.Context, events chan<- Event) error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var partial []byte
	for {
		chunk, err := r.ReadBytes('\n')
		partial = append(partial, chunk...)

		if err == nil {
			line := bytes.TrimRight(partial, "\r\n")
			if len(line) > 0 {
				select {
				case events <- parseEvent(line):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			partial = partial[:0]
			continue
		}
		if err != io.EOF {
			return fmt.Errorf("read transcript: %w", err)
		}

		// Caught up. A regular file returns EOF until the child appends
		// more, so poll; the partial line stays buffered until its newline
		// arrives.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.interval):
		}
	}
}
