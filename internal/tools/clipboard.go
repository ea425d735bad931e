package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ErrClipboardTool = errors.New("clipboard tool not found")

type clipCommand struct {
	Path string
	Args []string
}

// SelectCopyCommand picks the clipboard writer for the platform. lookPath is
// injectable for tests.
func SelectCopyCommand(goos string, lookPath func(string) (string, error)) (clipCommand, error) {
	switch goos {
	case "darwin":
		path, err := lookPath("pbcopy")
		if err != nil {
			return clipCommand{}, ErrClipboardTool
		}
		return clipCommand{Path: path}, nil
	case "linux":
		if path, err := lookPath("wl-copy"); err == nil {
			return clipCommand{Path: path}, nil
		}
		if path, err := lookPath("xclip"); err == nil {
			return clipCommand{Path: path, Args: []string{"-selection", "clipboard"}}, nil
		}
		return clipCommand{}, ErrClipboardTool
	default:
		return clipCommand{}, ErrClipboardTool
	}
}

// SelectPasteCommand picks the clipboard reader for the platform.
func SelectPasteCommand(goos string, lookPath func(string) (string, error)) (clipCommand, error) {
	switch goos {
	case "darwin":
		path, err := lookPath("pbpaste")
		if err != nil {
			return clipCommand{}, ErrClipboardTool
		}
		return clipCommand{Path: path}, nil
	case "linux":
		if path, err := lookPath("wl-paste"); err == nil {
			return clipCommand{Path: path, Args: []string{"--no-newline"}}, nil
		}
		if path, err := lookPath("xclip"); err == nil {
			return clipCommand{Path: path, Args: []string{"-selection", "clipboard", "-o"}}, nil
		}
		return clipCommand{}, ErrClipboardTool
	default:
		return clipCommand{}, ErrClipboardTool
	}
}

const clipboardCap = 500

func getClipboard(ctx context.Context) (string, error) {
	def, err := SelectPasteCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return "Couldn't access clipboard, Sheriff.", err
	}

	out, err := exec.CommandContext(ctx, def.Path, def.Args...).Output()
	if err != nil {
		return "Couldn't access clipboard, Sheriff.", err
	}

	content := strings.TrimSpace(string(out))
	if content == "" {
		return "Clipboard is empty, Sheriff.", nil
	}
	if len(content) > clipboardCap {
		content = content[:clipboardCap]
	}
	return fmt.Sprintf("Clipboard contents: %s", content), nil
}

func setClipboard(ctx context.Context, text string) (string, error) {
	def, err := SelectCopyCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return "Couldn't access clipboard, Sheriff.", err
	}

	cmd := exec.CommandContext(ctx, def.Path, def.Args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return "Couldn't write the clipboard, Sheriff.", err
	}
	return "Copied to clipboard, Sheriff.", nil
}
