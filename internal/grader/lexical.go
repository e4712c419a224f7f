package grader

import "strings"

// Neutral defaults for degenerate inputs (empty keyword sets, empty model
// answers). These are defined values, not error cases.
const (
	lexicalNeutralCoverage  = 0.5
	semanticNeutralCoverage = 0.7
	neutralDensity          = 0.5
	neutralCompleteness     = 0.7
)

// coverageDetail carries a coverage score plus the keywords that were covered
// worst, used by the feedback generator for concrete suggestions.
type coverageDetail struct {
	score   float64
	missing []string
}

// exactCoverage scores the fraction of keywords appearing as substrings of
// the normalized answer.
func exactCoverage(normalizedAnswer string, keywords []string) coverageDetail {
	if len(keywords) == 0 {
		return coverageDetail{score: lexicalNeutralCoverage}
	}
	matches := 0
	var missing []string
	for _, kw := range keywords {
		if strings.Contains(normalizedAnswer, kw) {
			matches++
		} else {
			missing = append(missing, kw)
		}
	}
	return coverageDetail{
		score:   float64(matches) / float64(len(keywords)),
		missing: missing,
	}
}

// densityScore measures whether the answer length is proportionate to the
// model answer. Ratios below 0.3 ramp linearly up to 0.5, ratios above 1.5
// take a slight "too long" penalty, and the adequate band interpolates from
// 0.7 toward 1.0.
func densityScore(answerText, expectedText string) float64 {
	expectedWords := wordCount(expectedText)
	if expectedWords == 0 {
		return neutralDensity
	}
	ratio := float64(wordCount(answerText)) / float64(expectedWords)

	switch {
	case ratio < 0.3:
		return ratio / 0.3 * 0.5
	case ratio > 1.5:
		return 0.9
	default:
		return 0.7 + (ratio-0.3)*0.3/1.2
	}
}
