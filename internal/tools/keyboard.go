package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// typeText feeds keystrokes to the focused window: wtype on Wayland,
// xdotool on X11.
func typeText(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "Type what, Sheriff?", fmt.Errorf("type_text without text")
	}

	if path, err := exec.LookPath("wtype"); err == nil {
		if err := exec.CommandContext(ctx, path, text).Run(); err != nil {
			return "Typing failed, Sheriff.", err
		}
		return "Typed the text, Sheriff.", nil
	}
	if path, err := exec.LookPath("xdotool"); err == nil {
		if err := exec.CommandContext(ctx, path, "type", "--delay", "20", text).Run(); err != nil {
			return "Typing failed, Sheriff.", err
		}
		return "Typed the text, Sheriff.", nil
	}

	return "No typing tool installed, Sheriff.", fmt.Errorf("neither wtype nor xdotool found")
}

func pressKey(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "Press what, Sheriff?", fmt.Errorf("press_key without key")
	}

	// "ctrl+c" style combos pass straight through to the tool
	if path, err := exec.LookPath("wtype"); err == nil {
		args := []string{}
		for _, part := range strings.Split(key, "+") {
			args = append(args, "-k", part)
		}
		if err := exec.CommandContext(ctx, path, args...).Run(); err != nil {
			return "Key press failed, Sheriff.", err
		}
		return fmt.Sprintf("Pressed %s, Sheriff.", key), nil
	}
	if path, err := exec.LookPath("xdotool"); err == nil {
		if err := exec.CommandContext(ctx, path, "key", key).Run(); err != nil {
			return "Key press failed, Sheriff.", err
		}
		return fmt.Sprintf("Pressed %s, Sheriff.", key), nil
	}

	return "No typing tool installed, Sheriff.", fmt.Errorf("neither wtype nor xdotool found")
}
