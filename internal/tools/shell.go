package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	commandTimeout = 30 * time.Second
	outputCap      = 500
)

// destructivePatterns flags commands that must be confirmed out loud before
// they run.
var destructivePatterns = []string{
	"rm ", "rmdir", "remove", "delete",
	"format", "fdisk", "mkfs",
	"drop ", "truncate",
	"shutdown", "restart", "reboot", "poweroff",
	"> ", ">>",
	"git push --force", "git reset --hard",
}

// IsDestructive reports whether a shell command looks irreversible.
func IsDestructive(command string) bool {
	lower := strings.ToLower(command)
	for _, pattern := range destructivePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// RunCommand executes a shell command with a timeout and returns its capped
// output as the spoken reply.
func RunCommand(ctx context.Context, command string) (string, error) {
	if command == "" {
		return "Run what, Sheriff?", fmt.Errorf("run_command without command")
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "sh", "-c", command).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "Command timed out.", ctx.Err()
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		if err != nil {
			return fmt.Sprintf("Failed: %v", err), err
		}
		text = "Command completed."
	}
	if len(text) > outputCap {
		text = text[:outputCap] + "\n...[truncated]"
	}

	return text, nil
}
