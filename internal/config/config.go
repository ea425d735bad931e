package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the daemon reads at boot. All keys have
// defaults so an empty .env still produces a working local setup.
type Config struct {
	// Brain
	LLMProvider   string
	OllamaURL     string
	OllamaModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	EmbedModel    string
	SocksProxy    string

	// Senses
	WhisperModel     string
	WakeWord         string
	ConverseWindow   time.Duration
	SilenceThreshold float64
	SilenceDuration  time.Duration
	TTSVoice         string
	TTSRate          int
	ChimePath        string

	// Memory
	MemoryDB   string
	JournalDir string

	// Projects: alias -> absolute path, for the .sheriff ledgers.
	Projects map[string]string

	// HUD
	HUDAddr string
}

var providers = map[string]bool{
	"ollama": true,
	"openai": true,
}

// Load reads the env file (if present), overlays process env and applies
// defaults. A missing env file is not an error; the daemon can run on
// defaults alone.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{
		LLMProvider:      strings.ToLower(getenv("LLM_PROVIDER", "ollama")),
		OllamaURL:        getenv("OLLAMA_URL", "http://127.0.0.1:11434"),
		OllamaModel:      getenv("OLLAMA_MODEL", "llama3.2"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getenv("OPENAI_MODEL", "gpt-5-nano"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		EmbedModel:       getenv("EMBED_MODEL", "nomic-embed-text"),
		SocksProxy:       os.Getenv("SOCKS_PROXY"),
		WhisperModel:     getenv("WHISPER_MODEL", "third_party/whisper.cpp/models/ggml-base.en.bin"),
		WakeWord:         strings.ToLower(getenv("WAKE_WORD", "jarvis")),
		SilenceThreshold: getfloat("SILENCE_THRESHOLD", 0.015),
		TTSVoice:         getenv("TTS_VOICE", "en"),
		TTSRate:          getint("TTS_RATE", 175),
		ChimePath:        getenv("CHIME_PATH", "chime.mp3"),
		MemoryDB:         getenv("MEMORY_DB", "data/memory.sqlite"),
		JournalDir:       getenv("JOURNAL_DIR", "logs"),
		HUDAddr:          getenv("HUD_ADDR", "127.0.0.1:8092"),
		Projects:         parseProjects(os.Getenv("PROJECT_PATHS")),
	}

	var err error
	if cfg.ConverseWindow, err = getdur("CONVERSE_WINDOW", 12*time.Second); err != nil {
		return nil, err
	}
	if cfg.SilenceDuration, err = getdur("SILENCE_DURATION", 600*time.Millisecond); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !providers[c.LLMProvider] {
		return fmt.Errorf("unknown LLM_PROVIDER %q (want ollama or openai)", c.LLMProvider)
	}
	if c.LLMProvider == "openai" && c.OpenAIKey == "" {
		return fmt.Errorf("LLM_PROVIDER=openai but OPENAI_API_KEY is not set")
	}
	if c.ConverseWindow < time.Second {
		return fmt.Errorf("CONVERSE_WINDOW %s too short (minimum 1s)", c.ConverseWindow)
	}
	if c.WakeWord == "" {
		return fmt.Errorf("WAKE_WORD must not be empty")
	}
	return nil
}

// EnsureDirs creates the directories the daemon writes into.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{filepath.Dir(c.MemoryDB), c.JournalDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// parseProjects parses "alias=path,alias=path" into the project registry.
func parseProjects(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		alias, path, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || alias == "" || path == "" {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(alias))] = filepath.Clean(strings.TrimSpace(path))
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getdur(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	// Accept both plain seconds ("12") and Go durations ("12s").
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
