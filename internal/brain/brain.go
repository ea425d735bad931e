package brain

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"sheriff/internal/llm"
	"sheriff/internal/tools"
)

// Recaller provides memory context for a query. Satisfied by *memory.Hippocampus.
type Recaller interface {
	Recall(ctx context.Context, query string, k int) string
}

// Brain is the agentic core: recall context, ask the model, and either speak
// its prose or execute the tool call it emitted.
type Brain struct {
	provider   llm.Provider
	memory     Recaller
	dispatcher *tools.Dispatcher

	mu      sync.Mutex
	pending *pendingConfirm
}

type pendingConfirm struct {
	command  string
	question string
}

var confirmWords = []string{"yes", "proceed", "do it", "confirm", "go"}

func New(provider llm.Provider, mem Recaller, dispatcher *tools.Dispatcher) *Brain {
	return &Brain{
		provider:   provider,
		memory:     mem,
		dispatcher: dispatcher,
	}
}

// Think processes one utterance and returns the sentence to speak. It never
// returns an error; failures become spoken apologies so the loop stays up.
func (b *Brain) Think(ctx context.Context, text string) string {
	slog.Info("thinking", "text", text)

	if reply, handled := b.resolveConfirmation(ctx, text); handled {
		return reply
	}

	prompt := text
	if b.memory != nil {
		if context := b.memory.Recall(ctx, text, 3); context != "" {
			prompt = context + "\n\nUser: " + text
		}
	}

	reply, err := b.provider.Chat(ctx, systemPrompt, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			slog.Error("brain offline", "err", err)
			return "My brain is not connected, Sheriff. Check the model server."
		}
		slog.Error("chat failed", "err", err)
		return "I encountered an error, Sheriff."
	}

	if !tools.LooksLikeAction(reply) {
		return reply
	}

	action, err := tools.ParseAction(reply)
	if err != nil {
		// the model wrapped prose in braces or emitted junk; just say it
		slog.Warn("unparseable action, speaking raw reply", "err", err)
		return reply
	}

	if action.Tool == "run_command" && tools.IsDestructive(action.Command) {
		question := "This may be destructive: " + action.Command + ". Proceed, Sheriff?"
		b.mu.Lock()
		b.pending = &pendingConfirm{command: action.Command, question: question}
		b.mu.Unlock()
		return question
	}

	result, err := b.dispatcher.Execute(ctx, action)
	if err != nil {
		slog.Warn("tool failed", "tool", action.Tool, "err", err)
	}
	return result
}

// resolveConfirmation consumes the utterance that follows a destructive
// command prompt: affirmative words run it, anything else cancels.
func (b *Brain) resolveConfirmation(ctx context.Context, text string) (string, bool) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	if pending == nil {
		return "", false
	}

	lower := strings.ToLower(text)
	for _, word := range confirmWords {
		if strings.Contains(lower, word) {
			result, err := tools.RunCommand(ctx, pending.command)
			if err != nil {
				slog.Warn("confirmed command failed", "err", err)
			}
			if len(result) > 100 {
				result = result[:100]
			}
			return "Done. " + result, true
		}
	}
	return "Cancelled, Sheriff.", true
}

// AwaitingConfirmation reports whether the next utterance will be consumed
// as a yes/no answer.
func (b *Brain) AwaitingConfirmation() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending != nil
}
