package grader

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text and trims surrounding whitespace. Total over any
// input; the empty string maps to itself.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// tokenize splits text into lower-cased alphabetic tokens. Digits and
// punctuation act as separators.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

// wordCount counts whitespace-separated words, the same measure the density
// scorer's length ratio is defined over.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {}, "could": {},
	"may": {}, "might": {}, "can": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "it": {}, "its": {}, "they": {}, "them": {}, "their": {},
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// lemma reduces a word to a crude base form by stripping common English
// inflection suffixes. It is intentionally conservative: a wrong lemma only
// weakens a fallback match, it never breaks scoring.
func lemma(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 4 && (strings.HasSuffix(word, "sses") || strings.HasSuffix(word, "xes") ||
		strings.HasSuffix(word, "zes") || strings.HasSuffix(word, "ches") || strings.HasSuffix(word, "shes")):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "s") &&
		!strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is"):
		return word[:len(word)-1]
	case len(word) > 5 && strings.HasSuffix(word, "ing"):
		return collapseDoubled(word[:len(word)-3])
	case len(word) > 4 && strings.HasSuffix(word, "ed"):
		return collapseDoubled(word[:len(word)-2])
	}
	return word
}

func collapseDoubled(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !strings.ContainsRune("aeiou", rune(stem[n-1])) {
		return stem[:n-1]
	}
	return stem
}
