package memory

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known strings to fixed vectors so similarity is
// deterministic.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func openTestHippocampus(t *testing.T, embed Embedder) *Hippocampus {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "memory.db"), embed)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestRecallRanksBySimilarity(t *testing.T) {
	embed := &fakeEmbedder{vectors: map[string][]float32{
		"favorite editor is neovim": {1, 0, 0},
		"the cat is orange":         {0, 1, 0},
		"what editor do I use":      {0.9, 0.1, 0},
	}}
	h := openTestHippocampus(t, embed)

	ctx := context.Background()
	require.NoError(t, h.Memorize(ctx, "favorite editor is neovim", "user"))
	require.NoError(t, h.Memorize(ctx, "the cat is orange", "user"))

	got := h.Recall(ctx, "what editor do I use", 1)
	require.Contains(t, got, "Relevant Context:")
	require.Contains(t, got, "[USER]: favorite editor is neovim")
	require.NotContains(t, got, "cat")
}

func TestRecallEmptyStore(t *testing.T) {
	h := openTestHippocampus(t, &fakeEmbedder{})
	if got := h.Recall(context.Background(), "anything", 3); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestRecallEmbedderDown(t *testing.T) {
	embed := &fakeEmbedder{vectors: map[string][]float32{"note": {1, 0, 0}}}
	h := openTestHippocampus(t, embed)
	require.NoError(t, h.Memorize(context.Background(), "note", "user"))

	embed.err = errors.New("connection refused")
	if got := h.Recall(context.Background(), "note", 3); got != "" {
		t.Fatalf("expected empty context when embedder is down, got %q", got)
	}
}

func TestMemorizeSurvivesEmbedFailure(t *testing.T) {
	embed := &fakeEmbedder{err: errors.New("connection refused")}
	h := openTestHippocampus(t, embed)

	// stored without a vector, not an error
	require.NoError(t, h.Memorize(context.Background(), "unembeddable", "user"))

	var count int
	require.NoError(t, h.db.QueryRow(`SELECT count(*) FROM memories`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestNilHippocampusIsInert(t *testing.T) {
	var h *Hippocampus
	if err := h.Memorize(context.Background(), "text", "user"); err != nil {
		t.Fatalf("nil Memorize: %v", err)
	}
	if got := h.Recall(context.Background(), "text", 3); got != "" {
		t.Fatalf("nil Recall returned %q", got)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0.5, -1.25, 3.75, 0}
	got := decodeVector(encodeVector(vec))
	require.Equal(t, vec, got)
}

func TestDecodeVectorRejectsRaggedBlob(t *testing.T) {
	if decodeVector([]byte{1, 2, 3}) != nil {
		t.Fatalf("expected nil for blob not divisible by 4")
	}
	if decodeVector(nil) != nil {
		t.Fatalf("expected nil for empty blob")
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Fatalf("orthogonal vectors: %v", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Fatalf("zero vector: %v", got)
	}
}

func TestRecallFormatsSources(t *testing.T) {
	embed := &fakeEmbedder{vectors: map[string][]float32{
		"deploy friday": {1, 0, 0},
		"deploy":        {1, 0, 0},
	}}
	h := openTestHippocampus(t, embed)
	require.NoError(t, h.Memorize(context.Background(), "deploy friday", "journal"))

	got := h.Recall(context.Background(), "deploy", 3)
	if !strings.HasPrefix(got, "Relevant Context:\n[JOURNAL]: deploy friday") {
		t.Fatalf("unexpected format:\n%s", got)
	}
}
