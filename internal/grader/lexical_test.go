package grader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactCoverage(t *testing.T) {
	t.Run("all keywords present", func(t *testing.T) {
		got := exactCoverage("polymorphism lets objects of many types behave uniformly", []string{"polymorphism", "objects", "types"})
		assert.Equal(t, 1.0, got.score)
		assert.Empty(t, got.missing)
	})

	t.Run("partial match reports missing keywords", func(t *testing.T) {
		got := exactCoverage("polymorphism is useful", []string{"polymorphism", "objects", "types", "uniform"})
		assert.Equal(t, 0.25, got.score)
		assert.Equal(t, []string{"objects", "types", "uniform"}, got.missing)
	})

	t.Run("substring match counts", func(t *testing.T) {
		got := exactCoverage("the subclasses inherit behavior", []string{"class"})
		assert.Equal(t, 1.0, got.score)
	})

	t.Run("no keywords yields neutral default", func(t *testing.T) {
		got := exactCoverage("anything at all", nil)
		assert.Equal(t, lexicalNeutralCoverage, got.score)
		assert.Empty(t, got.missing)
	})

	t.Run("empty answer misses everything", func(t *testing.T) {
		got := exactCoverage("", []string{"objects", "types"})
		assert.Equal(t, 0.0, got.score)
		assert.Equal(t, []string{"objects", "types"}, got.missing)
	})
}

func TestDensityScore(t *testing.T) {
	ten := strings.Repeat("word ", 10)

	tests := []struct {
		name     string
		answer   string
		expected string
		want     float64
	}{
		{"empty model answer is neutral", "whatever text", "", neutralDensity},
		{"empty answer scores zero", "", ten, 0.0},
		{"very short answer ramps linearly", strings.Repeat("word ", 1), ten, 1.0 / 3.0 * 0.5},
		{"lower band edge", strings.Repeat("word ", 3), ten, 0.7},
		{"equal length lands mid band", ten, ten, 0.7 + 0.7*0.3/1.2},
		{"upper band edge", strings.Repeat("word ", 15), ten, 1.0},
		{"overlong answer is penalized", strings.Repeat("word ", 16), ten, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, densityScore(tt.answer, tt.expected), 1e-9)
		})
	}
}
