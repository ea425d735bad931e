package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable means the backend cannot be reached at all (server down,
// missing key). The assistant reports "brain offline" instead of a raw error.
var ErrUnavailable = errors.New("llm backend unavailable")

// Provider is a chat + embedding backend.
type Provider interface {
	Name() string
	Chat(ctx context.Context, system, user string) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Factory func(cfg Config) (Provider, error)

// Config carries everything any provider might need; each factory picks
// what it understands.
type Config struct {
	Model      string
	EmbedModel string
	BaseURL    string
	APIKey     string
	SocksProxy string
}

var registry = map[string]Factory{}

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func New(name string, cfg Config) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("llm provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported llm provider: %s", name)
	}
	return factory(cfg)
}
