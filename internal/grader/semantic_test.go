package grader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder serves canned vectors keyed by exact text, falling back to a
// default vector for anything unlisted.
type fakeEmbedder struct {
	vecs     map[string][]float32
	fallback []float32
	calls    int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if vec, ok := f.vecs[text]; ok {
		return vec, nil
	}
	return f.fallback, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding backend unreachable")
}

func newTestScorer(t *testing.T, emb *fakeEmbedder) *semanticScorer {
	t.Helper()
	scorer, err := newSemanticScorer(emb, 0.6)
	require.NoError(t, err)
	return scorer
}

func TestNewSemanticScorerRequiresEmbedder(t *testing.T) {
	_, err := newSemanticScorer(nil, 0.6)
	assert.Error(t, err)
}

func TestSemanticCoverage(t *testing.T) {
	ctx := context.Background()

	t.Run("averages match rate with mean matched similarity", func(t *testing.T) {
		emb := &fakeEmbedder{
			vecs: map[string][]float32{
				"the code reuses behavior": {1, 0},
				"polymorphism":             {1, 0},
				"inheritance":              {0, 1},
			},
		}
		got, err := newTestScorer(t, emb).coverage(ctx, "the code reuses behavior", []string{"polymorphism", "inheritance"})
		require.NoError(t, err)
		assert.InDelta(t, 0.75, got.score, 1e-9)
		assert.Equal(t, []string{"inheritance"}, got.missing)
	})

	t.Run("lemma fallback matches despite low similarity", func(t *testing.T) {
		emb := &fakeEmbedder{
			vecs: map[string][]float32{
				"the code reuses behavior": {1, 0},
				"reuse":                    {0, 1},
			},
		}
		got, err := newTestScorer(t, emb).coverage(ctx, "the code reuses behavior", []string{"reuse"})
		require.NoError(t, err)
		// Matched by lemma, but the similarity contribution is zero.
		assert.InDelta(t, 0.5, got.score, 1e-9)
		assert.Empty(t, got.missing)
	})

	t.Run("no keywords yields neutral default", func(t *testing.T) {
		emb := &fakeEmbedder{fallback: []float32{1, 0}}
		got, err := newTestScorer(t, emb).coverage(ctx, "anything", nil)
		require.NoError(t, err)
		assert.Equal(t, semanticNeutralCoverage, got.score)
		assert.Zero(t, emb.calls)
	})

	t.Run("missing keywords sorted by ascending similarity", func(t *testing.T) {
		emb := &fakeEmbedder{
			vecs: map[string][]float32{
				"short text": {1, 0},
				"closer":     {0.4, 0.9},
				"farther":    {0, 1},
			},
		}
		got, err := newTestScorer(t, emb).coverage(ctx, "short text", []string{"closer", "farther"})
		require.NoError(t, err)
		assert.Equal(t, []string{"farther", "closer"}, got.missing)
	})

	t.Run("propagates embedder failure", func(t *testing.T) {
		scorer, err := newSemanticScorer(failingEmbedder{}, 0.6)
		require.NoError(t, err)
		_, err = scorer.coverage(ctx, "text", []string{"keyword"})
		assert.Error(t, err)
	})
}

func TestContentSimilarity(t *testing.T) {
	ctx := context.Background()

	t.Run("identical direction scores one", func(t *testing.T) {
		emb := &fakeEmbedder{fallback: []float32{1, 0}}
		got, err := newTestScorer(t, emb).contentSimilarity(ctx, "a", "b")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("negative cosine is floored at zero", func(t *testing.T) {
		emb := &fakeEmbedder{
			vecs: map[string][]float32{
				"answer":   {1, 0},
				"expected": {-1, 0},
			},
		}
		got, err := newTestScorer(t, emb).contentSimilarity(ctx, "answer", "expected")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})
}

func TestCompleteness(t *testing.T) {
	ctx := context.Background()

	t.Run("empty model answer is neutral", func(t *testing.T) {
		emb := &fakeEmbedder{fallback: []float32{1, 0}}
		got, err := newTestScorer(t, emb).completeness(ctx, "anything", "")
		require.NoError(t, err)
		assert.Equal(t, neutralCompleteness, got)
	})

	t.Run("covered concepts with balanced length score one", func(t *testing.T) {
		emb := &fakeEmbedder{fallback: []float32{1, 0}}
		got, err := newTestScorer(t, emb).completeness(ctx,
			"Plants store light energy", "Photosynthesis converts light energy")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("uncovered concepts and short answer", func(t *testing.T) {
		emb := &fakeEmbedder{
			vecs: map[string][]float32{
				"energy": {1, 0},
				"water":  {0, 1},
			},
		}
		got, err := newTestScorer(t, emb).completeness(ctx, "water", "Photosynthesis converts light energy")
		require.NoError(t, err)
		// Concept coverage 0, length balance 0.7.
		assert.InDelta(t, 0.35, got, 1e-9)
	})
}
