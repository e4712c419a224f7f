package grader

import (
	"sort"
	"strings"
	"unicode"
)

// NormalizeKeywords lower-cases and trims every keyword and drops empty
// entries. The operation is idempotent. Explicitly provided keywords are only
// ever normalized, never replaced by extraction.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = Normalize(kw)
		if kw == "" {
			continue
		}
		normalized = append(normalized, kw)
	}
	return normalized
}

// extractKeywordsByFrequency derives keywords from the model answer for the
// lexical strategy: alphabetic tokens of length >= 3, stop words removed,
// ranked by descending frequency with ties broken by first occurrence.
func extractKeywordsByFrequency(text string, max int) []string {
	freq := make(map[string]int)
	first := make(map[string]int)
	var order []string

	for i, tok := range tokenize(Normalize(text)) {
		if len(tok) < 3 || isStopWord(tok) {
			continue
		}
		if _, seen := freq[tok]; !seen {
			first[tok] = i
			order = append(order, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if freq[order[i]] != freq[order[j]] {
			return freq[order[i]] > freq[order[j]]
		}
		return first[order[i]] < first[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

// extractKeywordsLinguistic derives keywords for the semantic strategy:
// capitalized tokens that do not open a sentence are kept as named entities,
// remaining content words are lemmatized. Duplicates are dropped preserving
// first occurrence, capped at max.
func extractKeywordsLinguistic(text string, max int) []string {
	seen := make(map[string]struct{})
	var keywords []string

	add := func(kw string) {
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	sentenceStart := true
	for _, raw := range splitRawTokens(text) {
		tok := raw.text
		lower := strings.ToLower(tok)
		startOfSentence := sentenceStart
		sentenceStart = raw.endsSentence

		if len(lower) <= 2 || isStopWord(lower) {
			continue
		}
		if unicode.IsUpper([]rune(tok)[0]) && !startOfSentence {
			add(lower)
			continue
		}
		add(lemma(lower))
	}

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

type rawToken struct {
	text string
	// endsSentence marks that the separator after this token terminated a
	// sentence, so the next token sits at a sentence start.
	endsSentence bool
}

func splitRawTokens(text string) []rawToken {
	var tokens []rawToken
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, rawToken{text: b.String()})
			b.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		flush()
		if (r == '.' || r == '!' || r == '?') && len(tokens) > 0 {
			tokens[len(tokens)-1].endsSentence = true
		}
	}
	flush()
	return tokens
}
