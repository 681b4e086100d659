//go:build !windows

package spawn

import "os"

// DefaultShell returns the user's preferred shell for interactive terminal
// sessions, falling back to /bin/sh. The detached launch pipeline always
// runs through sh regardless of this value.
func DefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
