//go:build !windows

package spawn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// detach backgrounds the child through a shell pipeline. nohup makes the
// child ignore the hangup signal delivered when the launching session goes
// away, which is what lets it outlive the parent; the shell itself exits as
// soon as backgrounding succeeds.
//
// The PID handshake reads exactly one line of the shell's stdout (the
// `echo $!`). sh is invoked non-interactively so it sources no startup files
// and should print nothing of its own; if the environment ever violates
// that, the wrong value would be captured and surface as a PidParseError.
func detach(req Request) (int, error) {
	// The pipeline backgrounds before any of its stages can run, so a
	// missing input file or executable would otherwise report success with
	// the PID of an already-dead job. Check both up front.
	if _, err := os.Stat(req.InputFile); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInputRead, err)
	}
	if _, err := exec.LookPath(req.Path); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	cmd := exec.Command("sh", "-c", composeCommand(req))
	cmd.Dir = req.Dir

	// The shell's stderr must be a plain descriptor, not a collected writer:
	// the backgrounded cat stage inherits fd 2 and keeps it open until the
	// child drains its stdin, and a collected writer would make Wait block
	// on that instead of on the shell's own exit.
	errR, errW, err := os.Pipe()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrShellLaunch, err)
	}
	defer errR.Close()
	cmd.Stderr = errW

	// The shell needs no stdin of its own; leaving it nil gives it /dev/null.
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		errW.Close()
		return 0, fmt.Errorf("%w: %v", ErrShellLaunch, err)
	}

	if err := cmd.Start(); err != nil {
		errW.Close()
		return 0, fmt.Errorf("%w: %v", ErrShellLaunch, err)
	}
	errW.Close()

	// First line of shell stdout is the echoed PID of the background job.
	// Anything after it is not needed for correctness.
	pidLine, _ := bufio.NewReader(stdout).ReadString('\n')

	// Waits for the launching shell only, never for the detached child. The
	// child has already been reparented by the time the shell exits.
	if err := cmd.Wait(); err != nil {
		status := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			status = exitErr.ExitCode()
		}
		// A non-zero shell exit means the pipeline never backgrounded, so
		// nothing still holds the descriptor and this read cannot stall.
		diag, _ := io.ReadAll(errR)
		return 0, &ShellError{Status: status, Stderr: strings.TrimSpace(string(diag))}
	}

	raw := strings.TrimSpace(pidLine)
	pid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || pid == 0 {
		return 0, &PidParseError{Raw: raw}
	}

	return int(pid), nil
}
