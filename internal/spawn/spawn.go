// Package spawn launches an external CLI as a fully detached process that
// survives its parent exiting.
//
// The child reads its input from a file and appends its combined
// stdout/stderr to a file; no live pipe to the parent remains after Detach
// returns. The only handle the caller keeps is the child's PID, which is a
// weak reference: the OS recycles PIDs, so Alive can report true for an
// unrelated process that inherited the number after the original exited.
//
// The two platforms use genuinely different mechanisms behind the same
// contract. On POSIX the child is backgrounded through a shell pipeline with
// nohup and its PID recovered from an echo handshake; on Windows the child is
// created directly with redirected handles and its own process group.
package spawn

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidPath is returned when a request path is not valid UTF-8 text.
	ErrInvalidPath = errors.New("path is not valid text")
	// ErrShellLaunch is returned when the launching shell could not be started.
	ErrShellLaunch = errors.New("failed to launch shell")
	// ErrOutputOpen is returned when the output file could not be opened for append.
	ErrOutputOpen = errors.New("failed to open output file")
	// ErrSpawn is returned when the child process could not be created.
	ErrSpawn = errors.New("failed to spawn process")
	// ErrInputRead is returned when the input file could not be read.
	ErrInputRead = errors.New("failed to read input file")
	// ErrStdinWrite is returned when input delivery to the child's stdin failed.
	// The child already exists at that point and is not killed; the returned
	// PID stays valid and its fate is the caller's to observe.
	ErrStdinWrite = errors.New("failed to write to child stdin")
)

// ShellError reports that the launching shell itself exited non-zero before
// the PID handshake completed.
type ShellError struct {
	Status int
	Stderr string
}

func (e *ShellError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("shell exited with status %d", e.Status)
	}
	return fmt.Sprintf("shell exited with status %d: %s", e.Status, e.Stderr)
}

// PidParseError reports that the shell's PID line was missing or malformed.
// This means the assumed shell contract was violated (unexpected shell
// implementation or startup output), which is distinct from a launch failure.
type PidParseError struct {
	Raw string
}

func (e *PidParseError) Error() string {
	return fmt.Sprintf("failed to parse PID from shell output %q", e.Raw)
}

// EnvVar is one environment override applied to the child on top of the
// inherited environment. Overrides are applied in order.
type EnvVar struct {
	Name  string
	Value string
}

// Request describes one detached launch. It exists only for the duration of
// a single Detach call.
type Request struct {
	// Path is the executable to run.
	Path string
	// Args are passed to the executable in order.
	Args []string
	// InputFile is streamed to the child's stdin. It must exist and be fully
	// written before Detach is called; it is consumed once, synchronously.
	InputFile string
	// OutputFile receives the child's combined stdout and stderr, appended
	// after any content the caller already wrote (such as a header line).
	OutputFile string
	// Dir is the child's working directory.
	Dir string
	// Env are environment overrides for the child.
	Env []EnvVar
}

func (r *Request) validate() error {
	for _, p := range []string{r.Path, r.InputFile, r.OutputFile} {
		if !utf8.ValidString(p) || strings.ContainsRune(p, 0) {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return nil
}

// Detach launches the requested executable as a detached child and returns
// its PID. The call blocks only for the launch handshake, never for the
// child's runtime. Ownership of the child is released to the OS before
// Detach returns; there is no way to cancel it through this package.
//
// All failures are terminal for the call; nothing is retried.
func Detach(req Request) (int, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}
	return detach(req)
}
