package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFeedbackCoverageBuckets(t *testing.T) {
	t.Run("high coverage", func(t *testing.T) {
		got := renderFeedback(feedbackInput{coverage: 0.8})
		assert.Equal(t, "Excellent coverage of key concepts.", got)
	})

	t.Run("mid coverage", func(t *testing.T) {
		got := renderFeedback(feedbackInput{coverage: 0.5})
		assert.Equal(t, "Good coverage of main points, but some key concepts are missing.", got)
	})

	t.Run("low coverage suggests at most three keywords", func(t *testing.T) {
		got := renderFeedback(feedbackInput{
			coverage: 0.2,
			missing:  []string{"alpha", "bravo", "charlie", "delta"},
		})
		assert.Contains(t, got, "Several important concepts are not addressed.")
		assert.Contains(t, got, "Consider including: alpha, bravo, charlie.")
		assert.NotContains(t, got, "delta")
	})

	t.Run("low coverage without keyword list omits suggestions", func(t *testing.T) {
		got := renderFeedback(feedbackInput{coverage: 0.0})
		assert.Equal(t, "Several important concepts are not addressed.", got)
	})
}

func TestRenderFeedbackDensity(t *testing.T) {
	high := 0.8
	mid := 0.5
	low := 0.3

	assert.Contains(t,
		renderFeedback(feedbackInput{coverage: 0.9, density: &high}),
		"Answer length and detail are appropriate.")

	assert.NotContains(t,
		renderFeedback(feedbackInput{coverage: 0.9, density: &mid}),
		"Answer")

	assert.Contains(t,
		renderFeedback(feedbackInput{coverage: 0.9, density: &low}),
		"Answer could be more detailed and comprehensive.")
}

func TestRenderFeedbackSemanticBuckets(t *testing.T) {
	sim := 0.55
	comp := 0.3
	got := renderFeedback(feedbackInput{coverage: 0.75, similarity: &sim, completeness: &comp})

	assert.Equal(t,
		"Excellent coverage of key concepts. "+
			"The response partially matches the expected answer. "+
			"Key concepts from the model answer are missing or underdeveloped.",
		got)
}

func TestRenderFeedbackDeterministic(t *testing.T) {
	in := feedbackInput{coverage: 0.4, missing: []string{"objects", "types"}}
	assert.Equal(t, renderFeedback(in), renderFeedback(in))
}
