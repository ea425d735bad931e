package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// WrapLRUCache memoizes embeddings in an expiring LRU so repeated phrases
// ("what time is it") don't hit the embedding endpoint every time.
func WrapLRUCache(next Embedder, model string, size int, ttl time.Duration) Embedder {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruEmbedder{
		next:  next,
		model: model,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  Embedder
	model string
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(l.model, text)
	if cached, ok := l.cache.Get(key); ok {
		slog.Debug("embedding cache hit")
		return cloneVector(cached), nil
	}

	vec, err := l.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	l.cache.Add(key, cloneVector(vec))
	return vec, nil
}

func cacheKey(model, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "embed:" + model + ":" + hex.EncodeToString(hash[:])
}

func cloneVector(vec []float32) []float32 {
	if len(vec) == 0 {
		return nil
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
