package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/examly/autograde/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	text      string
	err       error
	gotPrompt string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.text, f.err
}

func gradedSubmission() *model.Submission {
	return &model.Submission{
		ID:            42,
		IsGraded:      true,
		Status:        model.SubmissionStatusGraded,
		TotalMarks:    15,
		ObtainedMarks: 12.5,
		Percentage:    83.33,
		Exam:          model.Exam{Title: "Biology Midterm"},
		Answers: []model.Answer{
			{
				AnswerText:     "Water evaporates and condenses into clouds",
				MarksObtained:  7.5,
				MarksAllocated: 10,
				Feedback:       "Good coverage of main points, but some key concepts are missing.",
				Question: model.Question{
					QuestionText:   "Describe the water cycle.",
					ExpectedAnswer: "The water cycle includes evaporation condensation and precipitation",
				},
			},
		},
	}
}

func TestAnalyzeSubmissionRequiresGrading(t *testing.T) {
	analyzer := NewAnalyzer(&fakeProvider{})

	t.Run("nil submission", func(t *testing.T) {
		report := analyzer.AnalyzeSubmission(context.Background(), nil)
		assert.Equal(t, "Submission must be graded first", report.Error)
	})

	t.Run("ungraded submission", func(t *testing.T) {
		report := analyzer.AnalyzeSubmission(context.Background(), &model.Submission{Status: model.SubmissionStatusSubmitted})
		assert.Equal(t, "Submission must be graded first", report.Error)
	})
}

func TestAnalyzeSubmissionWithoutProvider(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	report := analyzer.AnalyzeSubmission(context.Background(), gradedSubmission())
	assert.Equal(t, "analysis provider is not configured", report.Error)
}

func TestAnalyzeSubmissionSuccess(t *testing.T) {
	provider := &fakeProvider{text: sampleAnalysis}
	analyzer := NewAnalyzer(provider)

	report := analyzer.AnalyzeSubmission(context.Background(), gradedSubmission())

	require.Empty(t, report.Error)
	assert.Contains(t, report.Summary, "solid grasp of core concepts")
	assert.NotEmpty(t, report.Strengths)
	assert.NotEmpty(t, report.Suggestions)

	// The prompt carries the exam context and every graded answer.
	assert.Contains(t, provider.gotPrompt, "Exam: Biology Midterm")
	assert.Contains(t, provider.gotPrompt, "Score: 12.50/15.00 (83.33%)")
	assert.Contains(t, provider.gotPrompt, "Question 1: Describe the water cycle.")
	assert.Contains(t, provider.gotPrompt, "Student's Answer: Water evaporates and condenses into clouds")
	assert.Contains(t, provider.gotPrompt, "Initial Feedback: Good coverage of main points")
	assert.Contains(t, provider.gotPrompt, "AREAS FOR IMPROVEMENT")
}

func TestAnalyzeSubmissionProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model overloaded")}
	analyzer := NewAnalyzer(provider)

	report := analyzer.AnalyzeSubmission(context.Background(), gradedSubmission())

	assert.Equal(t, "AI analysis failed: model overloaded", report.Error)
	assert.Empty(t, report.Summary)
}

func TestEnabled(t *testing.T) {
	var nilAnalyzer *Analyzer
	assert.False(t, nilAnalyzer.Enabled())
	assert.False(t, NewAnalyzer(nil).Enabled())
	assert.True(t, NewAnalyzer(&fakeProvider{}).Enabled())
}
