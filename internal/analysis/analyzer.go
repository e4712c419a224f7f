package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/examly/autograde/internal/model"
	"github.com/rs/zerolog/log"
)

// Report is the structured qualitative analysis of a graded submission.
// Failures are carried in Error; they never surface as a grading failure and
// never alter committed marks.
type Report struct {
	Summary             string   `json:"summary,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	AreasForImprovement []string `json:"areas_for_improvement,omitempty"`
	Suggestions         []string `json:"suggestions,omitempty"`
	FullAnalysis        string   `json:"full_analysis,omitempty"`
	Error               string   `json:"error,omitempty"`
}

// Provider is a swappable generative-text backend. A nil Provider means the
// analysis feature is disabled.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExternalServiceError wraps a provider call failure (network, auth, quota,
// unusable response). It is always carried in Report.Error and never surfaces
// as a grading failure.
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("analysis provider %s failed: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

const defaultTimeout = 60 * time.Second

type Analyzer struct {
	provider Provider
	timeout  time.Duration
}

func NewAnalyzer(provider Provider) *Analyzer {
	return &Analyzer{provider: provider, timeout: defaultTimeout}
}

// Enabled reports whether a provider was configured.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.provider != nil
}

// AnalyzeSubmission builds a performance-analysis prompt from the graded
// submission, sends it to the provider and parses the sectioned response.
// Preconditions and failures come back in Report.Error, never as a panic or a
// grading error.
func (a *Analyzer) AnalyzeSubmission(ctx context.Context, submission *model.Submission) *Report {
	if submission == nil || !submission.IsGraded {
		return &Report{Error: "Submission must be graded first"}
	}
	if !a.Enabled() {
		return &Report{Error: "analysis provider is not configured"}
	}

	prompt := buildAnalysisPrompt(submission)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.provider.Generate(ctx, prompt)
	if err != nil {
		svcErr := &ExternalServiceError{Provider: a.provider.Name(), Err: err}
		log.Warn().Err(svcErr).Uint("submissionID", submission.ID).Msg("AI analysis call failed")
		return &Report{Error: fmt.Sprintf("AI analysis failed: %s", err.Error())}
	}

	report := parseReport(text)
	return report
}

func buildAnalysisPrompt(submission *model.Submission) string {
	var b strings.Builder

	b.WriteString("You are an educational assessment expert. Analyze this student's exam performance and provide constructive feedback.\n\n")
	fmt.Fprintf(&b, "Exam: %s\n", submission.Exam.Title)
	fmt.Fprintf(&b, "Score: %.2f/%.2f (%.2f%%)\n\n", submission.ObtainedMarks, submission.TotalMarks, submission.Percentage)
	b.WriteString("Detailed Answers:\n")

	for idx, answer := range submission.Answers {
		fmt.Fprintf(&b, "\nQuestion %d: %s\n", idx+1, answer.Question.QuestionText)
		fmt.Fprintf(&b, "Expected Answer: %s\n", answer.Question.ExpectedAnswer)
		fmt.Fprintf(&b, "Student's Answer: %s\n", answer.AnswerText)
		fmt.Fprintf(&b, "Score: %.2f/%.2f\n", answer.MarksObtained, answer.MarksAllocated)
		fmt.Fprintf(&b, "Initial Feedback: %s\n", answer.Feedback)
	}

	b.WriteString(`
Please provide:
1. SUMMARY: A brief overall assessment (2-3 sentences)
2. STRENGTHS: What the student did well (3-4 points)
3. AREAS FOR IMPROVEMENT: What needs work (3-4 points)
4. SUGGESTIONS: Specific actionable recommendations (3-4 points)

Keep the feedback encouraging, constructive, and specific. Focus on learning outcomes.
`)

	return b.String()
}
