// Package job records detached assistant runs and owns their on-disk layout:
// a JSON record per job plus the input/transcript file pair each run uses.
package job

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Job is one detached assistant run.
//
// PID is a weak reference: the OS recycles identifiers after a process exits,
// so liveness must always be reconfirmed against the process table. A stored
// PID can briefly name an unrelated process that inherited the number.
type Job struct {
	ID         string    `json:"id"`
	Assistant  string    `json:"assistant"`
	PID        int       `json:"pid"`
	Command    string    `json:"command"`
	Args       []string  `json:"args,omitempty"`
	InputFile  string    `json:"input_file"`
	OutputFile string    `json:"output_file"`
	WorkDir    string    `json:"work_dir"`
	StartedAt  time.Time `json:"started_at"`
}

// NewID returns a short random job identifier.
func NewID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Header is the first record of a fresh transcript file, written by the
// caller before the assistant is spawned. The detached child only ever
// appends after it.
type Header struct {
	Type      string    `json:"type"`
	JobID     string    `json:"job_id"`
	Assistant string    `json:"assistant"`
	WorkDir   string    `json:"work_dir"`
	StartedAt time.Time `json:"started_at"`
}

// NewHeader builds the transcript header for a job.
func NewHeader(j *Job) Header {
	return Header{
		Type:      "job",
		JobID:     j.ID,
		Assistant: j.Assistant,
		WorkDir:   j.WorkDir,
		StartedAt: j.StartedAt,
	}
}

// WriteHeader creates the transcript file with the header as its only line.
// The file must not already exist; a transcript is never reused.
func WriteHeader(path string, h Header) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
