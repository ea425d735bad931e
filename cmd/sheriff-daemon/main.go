package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"sheriff/internal/assistant"
	"sheriff/internal/audio"
	"sheriff/internal/brain"
	"sheriff/internal/config"
	"sheriff/internal/hud"
	"sheriff/internal/ipc"
	"sheriff/internal/llm"
	"sheriff/internal/memory"
	"sheriff/internal/tools"
	"sheriff/internal/tts"
	"sheriff/pkg/audioconv"
	"sheriff/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	socket := cli.StringP("socket", "s", ipc.SocketPath, "Control socket path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirs(); err != nil {
		log.Error("Failed to create data dirs", "err", err)
		os.Exit(1)
	}

	log.Debug("Loaded config", "provider", cfg.LLMProvider, "wake", cfg.WakeWord)

	baseURL := cfg.OllamaURL
	if cfg.LLMProvider == "openai" {
		baseURL = cfg.OpenAIBaseURL
	}
	model := cfg.OllamaModel
	if cfg.LLMProvider == "openai" {
		model = cfg.OpenAIModel
	}

	provider, err := llm.New(cfg.LLMProvider, llm.Config{
		Model:      model,
		EmbedModel: cfg.EmbedModel,
		BaseURL:    baseURL,
		APIKey:     cfg.OpenAIKey,
		SocksProxy: cfg.SocksProxy,
	})
	if err != nil {
		log.Error("Failed to init llm provider", "err", err)
		os.Exit(1)
	}

	log.Debug("Loaded llm provider", "name", provider.Name())

	rec := audio.NewRecorder(cfg.SilenceThreshold, cfg.SilenceDuration)
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio", "err", err)
		os.Exit(1)
	}
	defer rec.Close()

	log.Debug("Loaded recorder")

	whisper, err := stt.NewTranscriber(cfg.WhisperModel)
	if err != nil {
		log.Error("Failed to init whisper", "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	log.Debug("Loaded whisper", "model", cfg.WhisperModel)

	engine, err := tts.NewEngine(cfg.TTSVoice, cfg.TTSRate)
	if err != nil {
		log.Error("Failed to init tts", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	log.Debug("Loaded tts", "voice", cfg.TTSVoice)

	embedder := memory.WrapLRUCache(provider, cfg.EmbedModel, 512, time.Hour)
	hippo, err := memory.Open(cfg.MemoryDB, embedder)
	if err != nil {
		// memory loss degrades recall, it does not ground the assistant
		log.Warn("Memory unavailable, running without recall", "err", err)
		hippo = nil
	}
	defer hippo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	journal := memory.NewJournal(cfg.JournalDir)
	ledger := memory.NewLedger(cfg.Projects)
	dispatcher := tools.NewDispatcher(journal, ledger, cancel)

	bus := hud.NewBus()
	bus.Serve(cfg.HUDAddr)

	asst := &assistant.Assistant{
		Recorder:  rec,
		STT:       whisper,
		TTS:       engine,
		Brain:     brain.New(provider, hippo, dispatcher),
		Reflex:    brain.NewReflex(engine.Stop, dispatcher.Execute),
		Memory:    hippo,
		Ducker:    audio.NewDucker([]string{"sheriff", "espeak"}, 20),
		Bus:       bus,
		WakeWord:  cfg.WakeWord,
		ChimePath: cfg.ChimePath,
		Latch:     assistant.NewLatch(cfg.ConverseWindow),
	}

	closeIPC, err := ipc.StartServer(*socket, func(msg ipc.ControlMessage) ipc.Reply {
		return handleControl(ctx, asst, msg)
	})
	if err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}
	defer closeIPC()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info("Shutting down")
		cancel()
	}()

	log.Info("Boot up - successful")
	_ = engine.Speak("Ready for your command, Sheriff.")

	if err := asst.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Voice loop failed", "err", err)
		os.Exit(1)
	}

	_ = engine.Speak("Goodbye, Sheriff.")
}

func handleControl(ctx context.Context, asst *assistant.Assistant, msg ipc.ControlMessage) ipc.Reply {
	log.Debug("control message", "cmd", msg.Cmd)

	switch msg.Cmd {
	case "trigger":
		// push-to-talk: open the window so the next phrase needs no wake word
		asst.Latch.Open()
		return ipc.Reply{OK: true, Detail: "listening"}

	case "stop":
		asst.Interrupt()
		return ipc.Reply{OK: true, Detail: "stopped"}

	case "say":
		if msg.Arg == "" {
			return ipc.Reply{OK: false, Detail: "say needs text"}
		}
		go asst.Say(ctx, msg.Arg)
		return ipc.Reply{OK: true}

	case "inject":
		pcm, err := audioconv.DecodeFile(msg.Arg, 0)
		if err != nil {
			return ipc.Reply{OK: false, Detail: err.Error()}
		}
		asst.Latch.Open()
		go func() {
			if err := asst.ProcessPCM(ctx, pcm); err != nil {
				log.Error("inject failed", "err", err)
			}
		}()
		return ipc.Reply{OK: true, Detail: "injected"}

	case "status":
		return ipc.Reply{OK: true, Detail: asst.Status()}

	default:
		log.Warn("Unknown command", "cmd", msg.Cmd)
		return ipc.Reply{OK: false, Detail: "unknown command: " + msg.Cmd}
	}
}
