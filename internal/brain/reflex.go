package brain

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"sheriff/internal/tools"
)

var (
	stopRe    = regexp.MustCompile(`(?i)^(stop|quiet|silence|shut up)$`)
	openURLRe = regexp.MustCompile(`(?i)^open (google|youtube|reddit|github|gmail|mail)(?:\.com)?$`)
	openAppRe = regexp.MustCompile(`(?i)^open (calc|calculator|terminal|explorer|files|spotify|code|vscode)$`)
	timeRe    = regexp.MustCompile(`(?i)^(what time is it|time check|current time)$`)
)

// Reflex short-circuits trivial commands past the LLM: stopping speech,
// opening well-known sites and apps, volume, time. Latency here is the
// difference between an assistant and an answering machine.
type Reflex struct {
	stop func()                                              // cancels TTS playback
	exec func(context.Context, tools.Action) (string, error) // dispatcher hook
}

func NewReflex(stop func(), exec func(context.Context, tools.Action) (string, error)) *Reflex {
	if stop == nil {
		stop = func() {}
	}
	return &Reflex{stop: stop, exec: exec}
}

// Check runs the command against the reflex patterns. When handled, the
// returned reply (possibly empty) is spoken and the LLM is never consulted.
func (r *Reflex) Check(ctx context.Context, command string) (string, bool) {
	command = strings.TrimSpace(command)
	lower := strings.ToLower(command)

	// stop has highest priority and stays silent
	if stopRe.MatchString(command) {
		slog.Info("reflex: stop")
		r.stop()
		return "", true
	}

	if m := openURLRe.FindStringSubmatch(command); m != nil {
		target := strings.ToLower(m[1])
		url := "https://www." + target + ".com"
		if target == "gmail" || target == "mail" {
			url = "https://mail.google.com"
		}
		slog.Info("reflex: open url", "url", url)
		reply, _ := r.exec(ctx, tools.Action{Tool: "open_url", URL: url})
		return reply, true
	}

	if m := openAppRe.FindStringSubmatch(command); m != nil {
		slog.Info("reflex: open app", "app", m[1])
		reply, _ := r.exec(ctx, tools.Action{Tool: "open_app", App: strings.ToLower(m[1])})
		return reply, true
	}

	if timeRe.MatchString(command) {
		slog.Info("reflex: time")
		reply, _ := r.exec(ctx, tools.Action{Tool: "get_time"})
		return reply, true
	}

	if strings.Contains(lower, "volume up") || strings.Contains(lower, "turn it up") {
		slog.Info("reflex: volume up")
		reply, _ := r.exec(ctx, tools.Action{Tool: "media", Media: "volumeup"})
		return reply, true
	}
	if strings.Contains(lower, "volume down") || strings.Contains(lower, "turn it down") || strings.Contains(lower, "turn down") {
		slog.Info("reflex: volume down")
		reply, _ := r.exec(ctx, tools.Action{Tool: "media", Media: "volumedown"})
		return reply, true
	}
	if lower == "mute" || lower == "unmute" {
		slog.Info("reflex: mute")
		reply, _ := r.exec(ctx, tools.Action{Tool: "media", Media: "mute"})
		return reply, true
	}

	return "", false
}
