package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sheriff/internal/audio"
	"sheriff/internal/brain"
	"sheriff/internal/hud"
	"sheriff/internal/memory"
	"sheriff/internal/tts"
	"sheriff/pkg/stt"
)

// minPhraseSamples filters out blips shorter than half a second.
const minPhraseSamples = audio.SampleRate / 2

// Assistant runs the voice loop:
// listen -> transcribe -> wake/latch -> reflex -> brain -> speak -> memorize.
type Assistant struct {
	Recorder *audio.Recorder
	STT      *stt.Transcriber
	TTS      *tts.Engine
	Brain    *brain.Brain
	Reflex   *brain.Reflex
	Memory   *memory.Hippocampus
	Ducker   *audio.Ducker
	Bus      *hud.Bus

	WakeWord  string
	ChimePath string
	Latch     *Latch

	variants []string
	sttOpts  stt.Options
}

func (a *Assistant) init() {
	if a.variants == nil {
		a.variants = WakeVariants(a.WakeWord)
		// prime whisper so the wake word survives transcription
		a.sttOpts = stt.Options{
			Language:      "en",
			InitialPrompt: strings.Join(a.variants[:min(4, len(a.variants))], ", ") + ".",
		}
	}
}

// Run blocks on the voice loop until ctx is cancelled. Per-phrase failures
// are logged and skipped; the loop itself only exits with ctx.
func (a *Assistant) Run(ctx context.Context) error {
	a.init()

	a.publish("state", "listening")
	slog.Info("voice loop started", "wake", a.WakeWord)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pcm, err := a.Recorder.RecordPhrase(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("record failed", "err", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if len(pcm) < minPhraseSamples {
			continue
		}

		if err := a.ProcessPCM(ctx, pcm); err != nil {
			slog.Error("phrase failed", "err", err)
		}
	}
}

// ProcessPCM transcribes one phrase and routes it through wake/latch logic.
// Also the entry point for the inject and trigger IPC verbs.
func (a *Assistant) ProcessPCM(ctx context.Context, pcm []float32) error {
	a.init()

	tctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	res, err := a.STT.TranscribePCM(tctx, pcm, a.sttOpts)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return nil
	}

	slog.Info("heard", "text", text)
	a.publish("heard", text)

	command, woke := DetectWake(text, a.variants)
	switch {
	case woke:
		a.Latch.Open()
		if command == "" {
			// wake word alone: chime and wait for the follow-up phrase
			a.chime()
			a.publish("state", "awaiting command")
			return nil
		}
	case a.Latch.Active():
		if len(text) <= 2 {
			return nil
		}
		command = strings.ToLower(text)
	default:
		// background speech, no wake word, no open window
		return nil
	}

	a.HandleCommand(ctx, command)
	a.Latch.Open()
	return nil
}

// HandleCommand runs one command through reflex then brain, speaks the reply
// and memorizes the exchange.
func (a *Assistant) HandleCommand(ctx context.Context, command string) {
	a.publish("state", "thinking")

	if reply, handled := a.Reflex.Check(ctx, command); handled {
		if reply != "" {
			a.publish("reply", reply)
			a.speak(ctx, reply)
		}
		return
	}

	reply := a.Brain.Think(ctx, command)
	if reply == "" {
		return
	}

	a.publish("reply", reply)
	a.speak(ctx, reply)

	if a.Memory != nil {
		snippet := fmt.Sprintf("User: %s | Sheriff: %s", command, truncate(reply, 100))
		if err := a.Memory.Memorize(ctx, snippet, "interaction"); err != nil {
			slog.Warn("memorize failed", "err", err)
		}
	}

	a.publish("state", "listening")
}

// Say speaks arbitrary text; backs the "say" IPC verb.
func (a *Assistant) Say(ctx context.Context, text string) {
	a.speak(ctx, text)
}

// Interrupt cancels in-flight speech (barge-in via reflex or IPC stop).
func (a *Assistant) Interrupt() {
	a.TTS.Stop()
	a.publish("state", "listening")
}

func (a *Assistant) Status() string {
	state := "listening"
	if a.TTS.Speaking() {
		state = "speaking"
	}
	latch := "closed"
	if a.Latch.Active() {
		latch = "open"
	}
	return fmt.Sprintf("state=%s latch=%s hud_clients=%d", state, latch, a.Bus.ClientCount())
}

func (a *Assistant) speak(ctx context.Context, text string) {
	if a.Ducker != nil {
		if err := a.Ducker.DuckOthers(ctx, 0.3, 200*time.Millisecond); err != nil {
			slog.Debug("duck failed", "err", err)
		}
		defer func() {
			if err := a.Ducker.UnduckOthers(ctx, 300*time.Millisecond); err != nil {
				slog.Debug("unduck failed", "err", err)
			}
		}()
	}

	if err := a.TTS.Speak(text); err != nil {
		slog.Error("tts failed", "err", err)
	}
}

func (a *Assistant) chime() {
	if a.ChimePath == "" {
		return
	}
	if err := tts.Chime(a.ChimePath); err != nil {
		slog.Debug("chime failed", "err", err)
	}
}

func (a *Assistant) publish(kind, content string) {
	if a.Bus != nil {
		a.Bus.Publish(kind, content)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
