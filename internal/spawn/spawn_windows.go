//go:build windows

package spawn

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach creates the child directly; no shell is involved, so arguments are
// passed as a structured list and no escaping happens. A normally created
// Windows child is not torn down with its parent's console session the way a
// POSIX child is by SIGHUP, so detachment needs only creation flags: a new
// process group insulates the child from console events aimed at the parent,
// and no window is shown for a background worker.
func detach(req Request) (int, error) {
	// Read the input up front so a missing input file fails before any child
	// process exists.
	input, err := os.ReadFile(req.InputFile)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInputRead, err)
	}

	// The caller has already written any header; only append.
	out, err := os.OpenFile(req.OutputFile, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputOpen, err)
	}
	defer out.Close()

	cmd := exec.Command(req.Path, req.Args...)
	cmd.Dir = req.Dir

	// One handle for both streams keeps the interleaving append-consistent.
	cmd.Stdout = out
	cmd.Stderr = out

	// Overrides go on top of the inherited environment, not in place of it.
	env := os.Environ()
	for _, ev := range req.Env {
		env = append(env, ev.Name+"="+ev.Value)
	}
	cmd.Env = env

	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NO_WINDOW,
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpawn, err)
	}
	pid := cmd.Process.Pid

	// Ownership passes to the OS; the PID is the only handle kept. Never
	// Wait here: the child is expected to outlive this process.
	defer cmd.Process.Release()

	// Closing stdin is what signals end-of-input to the child, the same
	// effect as pipe EOF on POSIX. A stdin failure is reported but the child
	// is left running; its fate is the caller's to observe via the probe.
	if _, err := stdin.Write(input); err != nil {
		stdin.Close()
		return pid, fmt.Errorf("%w: %v", ErrStdinWrite, err)
	}
	if err := stdin.Close(); err != nil {
		return pid, fmt.Errorf("%w: %v", ErrStdinWrite, err)
	}

	return pid, nil
}
