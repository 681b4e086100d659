//go:build windows

package spawn

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetachMissingInputFailsBeforeSpawn(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "output.jsonl")
	if err := os.WriteFile(output, nil, 0644); err != nil {
		t.Fatal(err)
	}

	pid, err := Detach(Request{
		Path:       "cmd.exe",
		InputFile:  filepath.Join(dir, "does-not-exist.txt"),
		OutputFile: output,
		Dir:        dir,
	})
	if !errors.Is(err, ErrInputRead) {
		t.Errorf("expected ErrInputRead, got %v", err)
	}
	if pid != 0 {
		t.Errorf("expected no child to be created, got pid %d", pid)
	}
}

func TestDetachMissingOutputFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(input, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// The output file must pre-exist (the caller writes the header); opening
	// for append must not create it.
	_, err := Detach(Request{
		Path:       "cmd.exe",
		InputFile:  input,
		OutputFile: filepath.Join(dir, "missing", "out.jsonl"),
		Dir:        dir,
	})
	if !errors.Is(err, ErrOutputOpen) {
		t.Errorf("expected ErrOutputOpen, got %v", err)
	}
}

func TestAliveForCurrentProcess(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Error("current process should be alive")
	}
}

func TestDefaultShellIsPowershell(t *testing.T) {
	if got := DefaultShell(); got != "powershell.exe" {
		t.Errorf("DefaultShell() = %q", got)
	}
}
