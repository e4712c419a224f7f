package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysis = `1. SUMMARY: The student shows a solid grasp of core concepts.
Overall a good performance.
2. STRENGTHS:
- Clear explanations
- Good use of terminology
3. AREAS FOR IMPROVEMENT:
* Missing edge cases
4. SUGGESTIONS:
1. Review the water cycle
2. Practice longer answers
`

func TestParseReport(t *testing.T) {
	report := parseReport(sampleAnalysis)

	assert.Contains(t, report.Summary, "The student shows a solid grasp of core concepts.")
	assert.Contains(t, report.Summary, "Overall a good performance")
	assert.Equal(t, []string{"Clear explanations", "Good use of terminology"}, report.Strengths)
	assert.Equal(t, []string{"Missing edge cases"}, report.AreasForImprovement)
	assert.Equal(t, []string{"Review the water cycle", "Practice longer answers"}, report.Suggestions)
	assert.Equal(t, sampleAnalysis, report.FullAnalysis)
	assert.Empty(t, report.Error)
}

func TestExtractSection(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, sectionMissing, extractSection("no sections here", "SUMMARY"))
	})

	t.Run("case insensitive header match", func(t *testing.T) {
		got := extractSection("Summary: all good here", "SUMMARY")
		assert.Equal(t, "all good here", got)
	})

	t.Run("stops at the next known header", func(t *testing.T) {
		got := extractSection("SUMMARY: brief text\nSTRENGTHS: other", "SUMMARY")
		assert.Equal(t, "brief text", got)
	})

	t.Run("empty section body", func(t *testing.T) {
		assert.Equal(t, sectionMissing, extractSection("SUMMARY: \nSTRENGTHS: x", "SUMMARY"))
	})
}

func TestExtractBullets(t *testing.T) {
	t.Run("missing section yields nil", func(t *testing.T) {
		assert.Nil(t, extractBullets("nothing relevant", "SUGGESTIONS"))
	})

	t.Run("section without markers becomes one item", func(t *testing.T) {
		got := extractBullets("STRENGTHS: The answer was clear and accurate", "STRENGTHS")
		require.Len(t, got, 1)
		assert.Equal(t, "The answer was clear and accurate", got[0])
	})

	t.Run("preamble before the first marker is discarded", func(t *testing.T) {
		text := "STRENGTHS:\nHere are the strengths observed:\n- Point one\n- Point two"
		got := extractBullets(text, "STRENGTHS")
		assert.Equal(t, []string{"Point one", "Point two"}, got)
	})

	t.Run("continuation lines join the previous item", func(t *testing.T) {
		text := "STRENGTHS:\n- A point that wraps\nonto the next line\n- Second point"
		got := extractBullets(text, "STRENGTHS")
		assert.Equal(t, []string{"A point that wraps onto the next line", "Second point"}, got)
	})
}

func TestStripBulletMarker(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"- dashed", "dashed", true},
		{"* starred", "starred", true},
		{"• unicode bullet", "unicode bullet", true},
		{"12. numbered", "numbered", true},
		{"plain text", "", false},
		{"3 no dot", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := stripBulletMarker(tt.line)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
