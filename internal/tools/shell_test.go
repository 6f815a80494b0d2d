package tools

import (
	"runtime"
	"strings"
	"testing"
)

func TestShellCall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test assumes a POSIX shell")
	}

	got, err := Shell.Call(map[string]any{"command": "echo hello"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if !strings.Contains(got, "hello") {
		t.Errorf("got %q, want hello in output", got)
	}
}

func TestShellNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test assumes a POSIX shell")
	}

	_, err := Shell.Call(map[string]any{"command": "exit 3"})
	if err == nil {
		t.Fatal("expected error on non-zero exit")
	}
}

func TestShellRejectsDangerousCommands(t *testing.T) {
	testCases := []string{
		"rm -rf /",
		"sudo rm -rf / --no-preserve-root",
		"mkfs.ext4 /dev/sda1",
		"dd if=/dev/zero of=/dev/sda",
		":(){ :|:& };:",
	}
	for _, command := range testCases {
		t.Run(command, func(t *testing.T) {
			_, err := Shell.Call(map[string]any{"command": command})
			if err == nil {
				t.Errorf("expected %q to be rejected", command)
			}
			if err != nil && !strings.Contains(err.Error(), "dangerous pattern") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestShellRejectsEmptyCommand(t *testing.T) {
	_, err := Shell.Call(map[string]any{"command": "   "})
	if err == nil {
		t.Fatal("expected error for empty command")
	}

	_, err = Shell.Call(map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing command")
	}
}
