//go:build !windows

package spawn

import (
	"errors"
	"syscall"
)

// Alive reports whether a process with the given PID currently exists.
// Signal 0 probes the process table without delivering anything; EPERM still
// means the process exists, it just belongs to another user. Never blocks,
// never fails: anything unknowable is reported as not alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
