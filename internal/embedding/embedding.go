package embedding

import (
	"context"
	"math"
	"strings"
)

// Embedder turns a piece of text into a dense vector. Implementations are
// process-lifetime resources, constructed once at wiring time and safe for
// concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine returns the cosine similarity between two vectors. Mismatched or
// empty vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Memo caches vectors for the duration of one grading call so repeated
// keywords and concepts hit the provider once. Not safe for concurrent use;
// create one per call.
type Memo struct {
	embedder Embedder
	cache    map[string][]float32
}

func NewMemo(embedder Embedder) *Memo {
	return &Memo{embedder: embedder, cache: make(map[string][]float32)}
}

// Embed returns the vector for text. Blank text maps to a nil vector without
// touching the provider, so degenerate inputs never fail a grading call.
func (m *Memo) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if vec, ok := m.cache[text]; ok {
		return vec, nil
	}
	vec, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache[text] = vec
	return vec, nil
}
