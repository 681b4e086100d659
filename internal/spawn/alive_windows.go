//go:build windows

package spawn

import "golang.org/x/sys/windows"

// stillActive is the exit code reported for a process that has not exited.
const stillActive = 259

// Alive reports whether a process with the given PID currently exists.
// Never blocks, never fails: anything unknowable is reported as not alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)

	var exitCode uint32
	if err := windows.GetExitCodeProcess(handle, &exitCode); err != nil {
		return false
	}
	return exitCode == stillActive
}
