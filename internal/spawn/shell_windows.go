//go:build windows

package spawn

// DefaultShell returns the shell used for interactive terminal sessions.
func DefaultShell() string {
	return "powershell.exe"
}
