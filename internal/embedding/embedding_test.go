package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	vec   []float32
	err   error
}

func (c *countingEmbedder) Embed(context.Context, string) ([]float32, error) {
	c.calls++
	return c.vec, c.err
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"empty vectors", nil, nil, 0},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 0},
		{"zero norm", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMemo(t *testing.T) {
	ctx := context.Background()

	t.Run("caches repeated text", func(t *testing.T) {
		backend := &countingEmbedder{vec: []float32{1, 2}}
		memo := NewMemo(backend)

		first, err := memo.Embed(ctx, "same text")
		require.NoError(t, err)
		second, err := memo.Embed(ctx, "same text")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("distinct texts each hit the backend", func(t *testing.T) {
		backend := &countingEmbedder{vec: []float32{1}}
		memo := NewMemo(backend)

		_, err := memo.Embed(ctx, "one")
		require.NoError(t, err)
		_, err = memo.Embed(ctx, "two")
		require.NoError(t, err)

		assert.Equal(t, 2, backend.calls)
	})

	t.Run("blank text skips the backend", func(t *testing.T) {
		backend := &countingEmbedder{vec: []float32{1}}
		memo := NewMemo(backend)

		vec, err := memo.Embed(ctx, "   ")
		require.NoError(t, err)
		assert.Nil(t, vec)
		assert.Zero(t, backend.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		backend := &countingEmbedder{err: errors.New("backend down")}
		memo := NewMemo(backend)

		_, err := memo.Embed(ctx, "text")
		require.Error(t, err)
		_, err = memo.Embed(ctx, "text")
		require.Error(t, err)

		assert.Equal(t, 2, backend.calls)
	})
}
