package grader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/examly/autograde/internal/embedding"
)

// semanticScorer runs the embedding-based scorers. It holds the per-call memo
// cache, so one instance serves exactly one grading call.
type semanticScorer struct {
	emb       *embedding.Memo
	threshold float64
}

func newSemanticScorer(embedder embedding.Embedder, threshold float64) (*semanticScorer, error) {
	if embedder == nil {
		return nil, fmt.Errorf("semantic strategy requires an embedding resource")
	}
	return &semanticScorer{emb: embedding.NewMemo(embedder), threshold: threshold}, nil
}

// coverage matches each keyword against the answer by embedding similarity,
// with a lemma/substring fallback. The score averages the match rate with the
// mean similarity of matched keywords.
func (s *semanticScorer) coverage(ctx context.Context, answerText string, keywords []string) (coverageDetail, error) {
	if len(keywords) == 0 {
		return coverageDetail{score: semanticNeutralCoverage}, nil
	}

	normalizedAnswer := Normalize(answerText)
	answerLemmas := make(map[string]struct{})
	for _, tok := range tokenize(normalizedAnswer) {
		answerLemmas[lemma(tok)] = struct{}{}
	}

	answerVec, err := s.emb.Embed(ctx, answerText)
	if err != nil {
		return coverageDetail{}, err
	}

	type keywordSim struct {
		keyword string
		sim     float64
	}
	matched := 0
	simSum := 0.0
	var unmatched []keywordSim

	for _, kw := range keywords {
		kwVec, err := s.emb.Embed(ctx, kw)
		if err != nil {
			return coverageDetail{}, err
		}
		sim := embedding.Cosine(answerVec, kwVec)

		_, lemmaHit := answerLemmas[lemma(kw)]
		if sim >= s.threshold || lemmaHit || strings.Contains(normalizedAnswer, kw) {
			matched++
			simSum += sim
			continue
		}
		unmatched = append(unmatched, keywordSim{keyword: kw, sim: sim})
	}

	sort.SliceStable(unmatched, func(i, j int) bool { return unmatched[i].sim < unmatched[j].sim })
	missing := make([]string, 0, len(unmatched))
	for _, u := range unmatched {
		missing = append(missing, u.keyword)
	}

	matchRate := float64(matched) / float64(len(keywords))
	meanSim := 0.0
	if matched > 0 {
		meanSim = simSum / float64(matched)
	}
	return coverageDetail{score: clamp01((matchRate + meanSim) / 2), missing: missing}, nil
}

// contentSimilarity is the whole-document similarity between candidate and
// model answer. Raw cosine may be negative; it is floored at 0.
func (s *semanticScorer) contentSimilarity(ctx context.Context, answerText, expectedText string) (float64, error) {
	answerVec, err := s.emb.Embed(ctx, answerText)
	if err != nil {
		return 0, err
	}
	expectedVec, err := s.emb.Embed(ctx, expectedText)
	if err != nil {
		return 0, err
	}
	return clamp01(embedding.Cosine(answerVec, expectedVec)), nil
}

// completeness measures concept-set overlap: each expected concept counts as
// covered when some candidate concept matches it by lemma or by similarity,
// averaged with a coarse length-balance term.
func (s *semanticScorer) completeness(ctx context.Context, answerText, expectedText string) (float64, error) {
	expected := extractConcepts(expectedText)
	if len(expected) == 0 {
		return neutralCompleteness, nil
	}
	candidates := extractConcepts(answerText)

	covered := 0
	for _, exp := range expected {
		hit, err := s.conceptCovered(ctx, exp, candidates)
		if err != nil {
			return 0, err
		}
		if hit {
			covered++
		}
	}
	coverage := float64(covered) / float64(len(expected))

	balance := 0.7
	ratio := float64(wordCount(answerText)) / float64(wordCount(expectedText))
	if ratio >= 0.5 && ratio <= 2.0 {
		balance = 1.0
	}

	return (coverage + balance) / 2, nil
}

func (s *semanticScorer) conceptCovered(ctx context.Context, concept string, candidates []string) (bool, error) {
	for _, cand := range candidates {
		if cand == concept {
			return true, nil
		}
	}
	conceptVec, err := s.emb.Embed(ctx, concept)
	if err != nil {
		return false, err
	}
	for _, cand := range candidates {
		candVec, err := s.emb.Embed(ctx, cand)
		if err != nil {
			return false, err
		}
		if embedding.Cosine(conceptVec, candVec) >= s.threshold {
			return true, nil
		}
	}
	return false, nil
}

// extractConcepts approximates noun-phrase heads: the text is chunked at stop
// words and punctuation, and the lemma of each chunk's last word becomes a
// concept. Duplicates are dropped preserving first occurrence.
func extractConcepts(text string) []string {
	seen := make(map[string]struct{})
	var concepts []string

	var chunk []string
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		head := lemma(chunk[len(chunk)-1])
		chunk = chunk[:0]
		if len(head) <= 2 {
			return
		}
		if _, ok := seen[head]; ok {
			return
		}
		seen[head] = struct{}{}
		concepts = append(concepts, head)
	}

	for _, tok := range tokenize(Normalize(text)) {
		if isStopWord(tok) {
			flush()
			continue
		}
		chunk = append(chunk, tok)
	}
	flush()
	return concepts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
