package memory

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Embedder turns text into a vector. Satisfied by any llm.Provider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	source     TEXT NOT NULL,
	kind       TEXT NOT NULL DEFAULT 'conversation',
	created_at TEXT NOT NULL,
	embedding  BLOB
);
`

// Hippocampus is the long-term memory: conversation snippets with their
// embeddings in sqlite, recalled by cosine similarity. Failures degrade to
// empty context; memory loss must never take the voice loop down.
type Hippocampus struct {
	db    *sql.DB
	embed Embedder
}

func Open(path string, embed Embedder) (*Hippocampus, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init memory schema: %w", err)
	}
	return &Hippocampus{db: db, embed: embed}, nil
}

func (h *Hippocampus) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Memorize stores a snippet. An embedding failure is logged and the snippet
// is kept without a vector; it just won't be recallable by similarity.
func (h *Hippocampus) Memorize(ctx context.Context, text, source string) error {
	if h == nil || h.db == nil || text == "" {
		return nil
	}

	var blob []byte
	if h.embed != nil {
		vec, err := h.embed.Embed(ctx, text)
		if err != nil {
			slog.Warn("memorize without embedding", "err", err)
		} else {
			blob = encodeVector(vec)
		}
	}

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO memories (text, source, kind, created_at, embedding) VALUES (?, ?, ?, ?, ?)`,
		text, source, "conversation", time.Now().Format(time.RFC3339), blob)
	if err != nil {
		return fmt.Errorf("insert memory: %w", err)
	}

	slog.Debug("memorized", "source", source, "len", len(text))
	return nil
}

type scored struct {
	text   string
	source string
	score  float64
}

// Recall returns up to k memories nearest to the query, formatted as a
// context block for the brain prompt. Empty string when nothing relevant
// exists or the embedder is down.
func (h *Hippocampus) Recall(ctx context.Context, query string, k int) string {
	if h == nil || h.db == nil || h.embed == nil || query == "" {
		return ""
	}
	if k <= 0 {
		k = 3
	}

	qvec, err := h.embed.Embed(ctx, query)
	if err != nil {
		slog.Warn("recall skipped, embedder down", "err", err)
		return ""
	}

	rows, err := h.db.QueryContext(ctx, `SELECT text, source, embedding FROM memories WHERE embedding IS NOT NULL`)
	if err != nil {
		slog.Warn("recall query failed", "err", err)
		return ""
	}
	defer rows.Close()

	var hits []scored
	for rows.Next() {
		var (
			text, source string
			blob         []byte
		)
		if err := rows.Scan(&text, &source, &blob); err != nil {
			continue
		}
		vec := decodeVector(blob)
		if len(vec) != len(qvec) {
			continue
		}
		hits = append(hits, scored{text: text, source: source, score: cosine(qvec, vec)})
	}
	if err := rows.Err(); err != nil {
		slog.Warn("recall scan failed", "err", err)
	}

	if len(hits) == 0 {
		return ""
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > k {
		hits = hits[:k]
	}

	var b strings.Builder
	b.WriteString("Relevant Context:\n")
	for i, hit := range hits {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s]: %s", strings.ToUpper(hit.source), hit.text)
	}
	return b.String()
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func encodeVector(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	out := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func decodeVector(blob []byte) []float32 {
	if len(blob) == 0 || len(blob)%4 != 0 {
		return nil
	}
	out := make([]float32, len(blob)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return out
}
