package tools

import (
	"context"
	"strings"
	"testing"
)

func TestIsDestructive(t *testing.T) {
	cases := []struct {
		command string
		want    bool
	}{
		{"rm -rf /tmp/scratch", true},
		{"sudo shutdown now", true},
		{"echo hi > notes.txt", true},
		{"git push --force origin main", true},
		{"DROP TABLE users", true},
		{"ls -la", false},
		{"git status", false},
		{"uptime", false},
	}
	for _, tc := range cases {
		if got := IsDestructive(tc.command); got != tc.want {
			t.Fatalf("IsDestructive(%q) = %v, want %v", tc.command, got, tc.want)
		}
	}
}

func TestRunCommandOutput(t *testing.T) {
	out, err := RunCommand(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunCommandSilentSuccess(t *testing.T) {
	out, err := RunCommand(context.Background(), "true")
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if out != "Command completed." {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRunCommandCapsOutput(t *testing.T) {
	out, err := RunCommand(context.Background(), "yes x | head -c 2000")
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if !strings.HasSuffix(out, "...[truncated]") {
		t.Fatalf("expected truncation marker, got %d bytes", len(out))
	}
}

func TestRunCommandEmpty(t *testing.T) {
	if _, err := RunCommand(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty command")
	}
}
