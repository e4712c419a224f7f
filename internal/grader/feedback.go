package grader

import "strings"

// feedbackInput collects the sub-scores relevant to the active strategy.
// Pointers distinguish "not computed for this strategy" from a zero score.
type feedbackInput struct {
	coverage     float64
	missing      []string
	density      *float64
	similarity   *float64
	completeness *float64
}

const maxSuggestedKeywords = 3

// renderFeedback composes deterministic, threshold-bucketed feedback
// sentences. Output depends only on the sub-scores and keyword list.
func renderFeedback(in feedbackInput) string {
	var parts []string

	switch {
	case in.coverage >= 0.7:
		parts = append(parts, "Excellent coverage of key concepts.")
	case in.coverage >= 0.5:
		parts = append(parts, "Good coverage of main points, but some key concepts are missing.")
	default:
		parts = append(parts, "Several important concepts are not addressed.")
		if len(in.missing) > 0 {
			suggest := in.missing
			if len(suggest) > maxSuggestedKeywords {
				suggest = suggest[:maxSuggestedKeywords]
			}
			parts = append(parts, "Consider including: "+strings.Join(suggest, ", ")+".")
		}
	}

	if in.density != nil {
		if *in.density >= 0.7 {
			parts = append(parts, "Answer length and detail are appropriate.")
		} else if *in.density < 0.4 {
			parts = append(parts, "Answer could be more detailed and comprehensive.")
		}
	}

	if in.similarity != nil {
		switch {
		case *in.similarity >= 0.7:
			parts = append(parts, "The response closely matches the expected answer.")
		case *in.similarity >= 0.5:
			parts = append(parts, "The response partially matches the expected answer.")
		default:
			parts = append(parts, "The response diverges significantly from the expected answer.")
		}
	}

	if in.completeness != nil {
		switch {
		case *in.completeness >= 0.7:
			parts = append(parts, "The expected concepts are addressed well.")
		case *in.completeness >= 0.5:
			parts = append(parts, "Some expected concepts are only partially developed.")
		default:
			parts = append(parts, "Key concepts from the model answer are missing or underdeveloped.")
		}
	}

	return strings.Join(parts, " ")
}
