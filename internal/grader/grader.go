package grader

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/examly/autograde/config"
	"github.com/examly/autograde/internal/embedding"
	"github.com/examly/autograde/internal/model"
	"github.com/rs/zerolog/log"
)

// Strategy selects the scorer chain for a grading run. It is a data decision
// made once at configuration time, not per answer.
type Strategy string

const (
	StrategyLexical  Strategy = "lexical"
	StrategySemantic Strategy = "semantic"
)

type LexicalWeights struct {
	Coverage float64
	Density  float64
}

type SemanticWeights struct {
	Coverage     float64
	Similarity   float64
	Completeness float64
}

type Options struct {
	Strategy        Strategy
	MatchThreshold  float64
	MaxKeywords     int
	MaxConcepts     int
	LexicalWeights  LexicalWeights
	SemanticWeights SemanticWeights
}

func DefaultOptions() Options {
	return Options{
		Strategy:        StrategyLexical,
		MatchThreshold:  0.6,
		MaxKeywords:     10,
		MaxConcepts:     8,
		LexicalWeights:  LexicalWeights{Coverage: 0.7, Density: 0.3},
		SemanticWeights: SemanticWeights{Coverage: 0.4, Similarity: 0.4, Completeness: 0.2},
	}
}

// AnswerResult is the transient per-answer breakdown. Percentages are rounded
// to two decimals; nil sub-scores were not computed by the active strategy.
type AnswerResult struct {
	AnswerID               uint     `json:"answer_id"`
	QuestionID             uint     `json:"question_id"`
	MarksObtained          float64  `json:"marks_obtained"`
	MarksAllocated         float64  `json:"marks_allocated"`
	KeywordMatchPercentage float64  `json:"keyword_match_percentage"`
	DensityScore           *float64 `json:"density_score,omitempty"`
	SimilarityScore        *float64 `json:"similarity_score,omitempty"`
	CompletenessScore      *float64 `json:"completeness_score,omitempty"`
	Feedback               string   `json:"feedback"`
}

// GradingSummary aggregates one submission's grading run. The engine returns
// it to the caller, who is responsible for persistence.
type GradingSummary struct {
	TotalObtained float64        `json:"total_obtained"`
	TotalMarks    float64        `json:"total_marks"`
	Percentage    float64        `json:"percentage"`
	AnswerResults []AnswerResult `json:"answer_results"`
}

// Grader drives the multi-factor scoring pipeline. Scorers are pure over
// (text, embedding resource), so one Grader may serve concurrent submissions.
type Grader struct {
	opts     Options
	embedder embedding.Embedder
}

func New(opts Options, embedder embedding.Embedder) *Grader {
	return &Grader{opts: opts, embedder: embedder}
}

func NewFromConfig(cfg *config.Config, embedder embedding.Embedder) *Grader {
	return New(Options{
		Strategy:       Strategy(cfg.Grading.Strategy),
		MatchThreshold: cfg.Grading.MatchThreshold,
		MaxKeywords:    cfg.Grading.MaxKeywords,
		MaxConcepts:    cfg.Grading.MaxConcepts,
		LexicalWeights: LexicalWeights{
			Coverage: cfg.Grading.CoverageWeight,
			Density:  cfg.Grading.DensityWeight,
		},
		SemanticWeights: SemanticWeights{
			Coverage:     cfg.Grading.SemCoverageWeight,
			Similarity:   cfg.Grading.SimilarityWeight,
			Completeness: cfg.Grading.CompletenessWt,
		},
	}, embedder)
}

func (g *Grader) Strategy() Strategy { return g.opts.Strategy }

// GradeAnswer scores a single answer against its question. It does not mutate
// the answer; the caller decides what to do with the result.
func (g *Grader) GradeAnswer(ctx context.Context, answer *model.Answer, question *model.Question) (*AnswerResult, error) {
	scorer, err := g.newScorer()
	if err != nil {
		return nil, err
	}
	return g.gradeAnswer(ctx, scorer, answer, question)
}

// GradeSubmission grades every answer of the submission in question order,
// then writes marks and feedback onto the answers and totals onto the
// submission. The run is all-or-none: any scorer failure aborts the call
// before a single mark is committed.
func (g *Grader) GradeSubmission(ctx context.Context, submission *model.Submission) (*GradingSummary, error) {
	if submission == nil {
		return nil, ErrNilSubmission
	}

	scorer, err := g.newScorer()
	if err != nil {
		return nil, err
	}

	// Index answers by question order; the slice itself stays untouched until
	// every answer has scored.
	indices := make([]int, len(submission.Answers))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		qa, qb := submission.Answers[indices[a]].Question, submission.Answers[indices[b]].Question
		if qa.OrderInExam != qb.OrderInExam {
			return qa.OrderInExam < qb.OrderInExam
		}
		return qa.ID < qb.ID
	})

	results := make([]AnswerResult, 0, len(submission.Answers))
	for _, idx := range indices {
		answer := &submission.Answers[idx]
		result, err := g.gradeAnswer(ctx, scorer, answer, &answer.Question)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	totalObtained := 0.0
	totalMarks := 0.0
	for i, idx := range indices {
		submission.Answers[idx].MarksObtained = results[i].MarksObtained
		submission.Answers[idx].Feedback = results[i].Feedback
		totalObtained += results[i].MarksObtained
		totalMarks += results[i].MarksAllocated
	}

	submission.TotalMarks = totalMarks
	submission.ObtainedMarks = round2(totalObtained)
	submission.Percentage = percentage(totalObtained, totalMarks)
	submission.IsGraded = true
	submission.Status = model.SubmissionStatusGraded

	log.Info().
		Uint("submissionID", submission.ID).
		Str("strategy", string(g.opts.Strategy)).
		Float64("obtained", submission.ObtainedMarks).
		Float64("total", totalMarks).
		Msg("Submission graded")

	return &GradingSummary{
		TotalObtained: submission.ObtainedMarks,
		TotalMarks:    totalMarks,
		Percentage:    submission.Percentage,
		AnswerResults: results,
	}, nil
}

// newScorer builds the semantic scorer (and its per-call memo cache) when the
// semantic strategy is active. Missing embedding resources surface here as a
// ScoringError, before any answer is touched.
func (g *Grader) newScorer() (*semanticScorer, error) {
	if g.opts.Strategy != StrategySemantic {
		return nil, nil
	}
	scorer, err := newSemanticScorer(g.embedder, g.opts.MatchThreshold)
	if err != nil {
		return nil, newScoringError("init", err)
	}
	return scorer, nil
}

func (g *Grader) gradeAnswer(ctx context.Context, scorer *semanticScorer, answer *model.Answer, question *model.Question) (*AnswerResult, error) {
	if answer == nil {
		return nil, &ValidationError{Field: "answer", Message: "answer is nil"}
	}
	if question == nil || question.ID == 0 {
		return nil, &ValidationError{Field: "question", Message: ErrMissingQuestion.Error()}
	}
	if question.Marks <= 0 {
		return nil, &ValidationError{Field: "marks", Message: fmt.Sprintf("question %d has non-positive marks", question.ID)}
	}

	keywords := NormalizeKeywords(question.Keywords)

	result := &AnswerResult{
		AnswerID:       answer.ID,
		QuestionID:     question.ID,
		MarksAllocated: float64(question.Marks),
	}
	maxMarks := float64(question.Marks)

	if g.opts.Strategy == StrategySemantic {
		if len(keywords) == 0 {
			keywords = extractKeywordsLinguistic(question.ExpectedAnswer, g.opts.MaxConcepts)
		}
		cov, err := scorer.coverage(ctx, answer.AnswerText, keywords)
		if err != nil {
			return nil, newScoringError("coverage", err)
		}
		similarity, err := scorer.contentSimilarity(ctx, answer.AnswerText, question.ExpectedAnswer)
		if err != nil {
			return nil, newScoringError("similarity", err)
		}
		completeness, err := scorer.completeness(ctx, answer.AnswerText, question.ExpectedAnswer)
		if err != nil {
			return nil, newScoringError("completeness", err)
		}

		w := g.opts.SemanticWeights
		result.MarksObtained = round2((cov.score*w.Coverage + similarity*w.Similarity + completeness*w.Completeness) * maxMarks)
		result.KeywordMatchPercentage = round2(cov.score * 100)
		result.SimilarityScore = ptr(round2(similarity * 100))
		result.CompletenessScore = ptr(round2(completeness * 100))
		result.Feedback = renderFeedback(feedbackInput{
			coverage:     cov.score,
			missing:      cov.missing,
			similarity:   &similarity,
			completeness: &completeness,
		})
		return result, nil
	}

	if len(keywords) == 0 {
		keywords = extractKeywordsByFrequency(question.ExpectedAnswer, g.opts.MaxKeywords)
	}
	cov := exactCoverage(Normalize(answer.AnswerText), keywords)
	density := densityScore(answer.AnswerText, question.ExpectedAnswer)

	w := g.opts.LexicalWeights
	result.MarksObtained = round2(cov.score*w.Coverage*maxMarks + density*w.Density*maxMarks)
	result.KeywordMatchPercentage = round2(cov.score * 100)
	result.DensityScore = ptr(round2(density * 100))
	result.Feedback = renderFeedback(feedbackInput{
		coverage: cov.score,
		missing:  cov.missing,
		density:  &density,
	})
	return result, nil
}

func percentage(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := round2(obtained / total * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 { return &v }
