package tools

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// appRegistry maps spoken aliases to executables. The assistant launches
// whatever the alias resolves to; unknown names are tried verbatim.
var appRegistry = map[string]string{
	// browsers
	"chrome": "google-chrome", "google chrome": "google-chrome",
	"firefox": "firefox", "brave": "brave",
	// development
	"vscode": "code", "visual studio code": "code", "vs code": "code",
	"terminal": "foot", "editor": "nvim",
	// system
	"files": "nautilus", "file explorer": "nautilus", "explorer": "nautilus",
	"calculator": "gnome-calculator", "calc": "gnome-calculator",
	// communication and media
	"discord": "discord", "slack": "slack", "telegram": "telegram-desktop",
	"spotify": "spotify", "vlc": "vlc", "steam": "steam", "obs": "obs",
}

// ResolveApp returns the executable for a spoken app name.
func ResolveApp(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if exe, ok := appRegistry[key]; ok {
		return exe
	}
	return key
}

func (d *Dispatcher) openApp(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "Which app, Sheriff?", fmt.Errorf("open_app without app")
	}

	exe := ResolveApp(name)
	cmd := exec.CommandContext(ctx, exe)
	if err := cmd.Start(); err != nil {
		return fmt.Sprintf("Could not find %s.", name), err
	}
	// detach; we are not the app's parent babysitter
	go cmd.Wait()

	return fmt.Sprintf("Opening %s.", name), nil
}

// NormalizeURL gives bare hostnames a scheme so openers accept them.
func NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func openURL(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "No address given, Sheriff.", fmt.Errorf("open_url without url")
	}

	full := NormalizeURL(raw)
	if err := browse(ctx, full); err != nil {
		return "Could not open the browser.", err
	}

	host := strings.Split(strings.TrimPrefix(strings.TrimPrefix(full, "https://"), "http://"), "/")[0]
	return fmt.Sprintf("Opening %s.", host), nil
}

// SearchURL builds the web search address for a query.
func SearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func webSearch(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "Search for what, Sheriff?", fmt.Errorf("web_search without query")
	}
	if err := browse(ctx, SearchURL(query)); err != nil {
		return "Could not open the browser.", err
	}
	return fmt.Sprintf("Searching for %s.", query), nil
}

func browse(ctx context.Context, target string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.CommandContext(ctx, opener, target).Start()
}
