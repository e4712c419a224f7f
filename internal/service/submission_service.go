package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/examly/autograde/internal/analysis"
	"github.com/examly/autograde/internal/dto"
	"github.com/examly/autograde/internal/grader"
	"github.com/examly/autograde/internal/model"
	"github.com/examly/autograde/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService is the intake workflow around the grading engine: it
// creates submission records, drives grading, and persists the outcome. The
// engine itself never touches the database.
type SubmissionService interface {
	SubmitExam(ctx context.Context, examID uint, req dto.SubmitExamRequest) (*dto.SubmissionResponse, error)
	GradeSubmission(ctx context.Context, submissionID uint) (*grader.GradingSummary, error)
	RegradeAnswer(ctx context.Context, answerID uint) (*grader.AnswerResult, error)
	GetSubmissionResults(submissionID uint) (*dto.SubmissionResultResponse, error)
	AnalyzeSubmission(ctx context.Context, submissionID uint) (*analysis.Report, error)
}

type submissionService struct {
	examRepo          repository.ExamRepository
	questionRepo      repository.QuestionRepository
	submissionRepo    repository.SubmissionRepository
	answerRepo        repository.AnswerRepository
	gradingResultRepo repository.GradingResultRepository
	grader            *grader.Grader
	analyzer          *analysis.Analyzer
	db                *gorm.DB // transactions for submission intake and grading commits
}

func NewSubmissionService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	gradingResultRepo repository.GradingResultRepository,
	g *grader.Grader,
	analyzer *analysis.Analyzer,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		examRepo:          examRepo,
		questionRepo:      questionRepo,
		submissionRepo:    submissionRepo,
		answerRepo:        answerRepo,
		gradingResultRepo: gradingResultRepo,
		grader:            g,
		analyzer:          analyzer,
		db:                db,
	}
}

// SubmitExam records the student's answers and runs grading synchronously.
// A grading failure does not fail the submission: the record stays in the
// "submitted" state and can be re-graded via GradeSubmission.
func (s *submissionService) SubmitExam(ctx context.Context, examID uint, req dto.SubmitExamRequest) (*dto.SubmissionResponse, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("exam not found with ID %d: %w", examID, err)
	}
	if !exam.IsPublished {
		return nil, fmt.Errorf("exam %d is not published", examID)
	}

	exists, err := s.submissionRepo.ExistsForStudentAndExam(req.StudentID, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submissions: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("student %d has already submitted exam %d", req.StudentID, examID)
	}

	questionMap := make(map[uint]model.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		questionMap[q.ID] = q
	}

	now := time.Now()
	submission := model.Submission{
		StudentID:   req.StudentID,
		ExamID:      examID,
		Status:      model.SubmissionStatusSubmitted,
		SubmittedAt: &now,
	}
	for _, a := range req.Answers {
		question, ok := questionMap[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d does not belong to exam %d", a.QuestionID, examID)
		}
		submission.Answers = append(submission.Answers, model.Answer{
			QuestionID:     question.ID,
			AnswerText:     a.AnswerText,
			MarksAllocated: float64(question.Marks),
		})
		submission.TotalMarks += float64(question.Marks)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&submission).Error
	}); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("SubmitExam: failed to create submission")
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	// Grade synchronously. The submission itself is already committed; if
	// grading fails (e.g. the embedding resource is down) it stays ungraded
	// and the error is only logged, matching the retry-or-fallback policy.
	if _, err := s.GradeSubmission(ctx, submission.ID); err != nil {
		log.Warn().Err(err).Uint("submissionID", submission.ID).Msg("SubmitExam: grading failed, submission left ungraded")
	}

	graded, err := s.submissionRepo.FindByIDWithDetails(submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission %d: %w", submission.ID, err)
	}
	return s.toResponse(graded)
}

// GradeSubmission runs the grading engine over a persisted submission and
// commits marks, feedback and totals in one transaction. Re-running with the
// same inputs and configuration is idempotent.
func (s *submissionService) GradeSubmission(ctx context.Context, submissionID uint) (*grader.GradingSummary, error) {
	submission, err := s.submissionRepo.FindByIDWithDetails(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission not found with ID %d: %w", submissionID, err)
	}

	summary, err := s.grader.GradeSubmission(ctx, submission)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.GradedAt = &now

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range submission.Answers {
			answer := &submission.Answers[i]
			if err := tx.Model(&model.Answer{}).Where("id = ?", answer.ID).Updates(map[string]interface{}{
				"marks_obtained": answer.MarksObtained,
				"feedback":       answer.Feedback,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Submission{}).Where("id = ?", submission.ID).Updates(map[string]interface{}{
			"total_marks":    submission.TotalMarks,
			"obtained_marks": submission.ObtainedMarks,
			"percentage":     submission.Percentage,
			"is_graded":      true,
			"status":         model.SubmissionStatusGraded,
			"graded_at":      submission.GradedAt,
		}).Error
	}); err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("GradeSubmission: failed to commit marks")
		return nil, fmt.Errorf("failed to commit grading for submission %d: %w", submissionID, err)
	}

	if err := s.gradingResultRepo.Upsert(&model.GradingResult{
		SubmissionID:   submission.ID,
		GradingMethod:  string(s.grader.Strategy()),
		DetailedScores: detailedScores(summary),
	}); err != nil {
		// The marks are committed; a missing breakdown row is not fatal.
		log.Warn().Err(err).Uint("submissionID", submissionID).Msg("GradeSubmission: failed to store detailed scores")
	}

	return summary, nil
}

// RegradeAnswer re-scores a single answer, typically after an instructor has
// adjusted the question's keywords or model answer, and folds the new marks
// into the submission totals. The submission must already be graded so the
// totals stay a sum over per-answer marks.
func (s *submissionService) RegradeAnswer(ctx context.Context, answerID uint) (*grader.AnswerResult, error) {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		return nil, fmt.Errorf("answer not found with ID %d: %w", answerID, err)
	}
	question, err := s.questionRepo.FindByID(answer.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", answer.QuestionID, err)
	}
	submission, err := s.submissionRepo.FindByIDWithDetails(answer.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("submission not found with ID %d: %w", answer.SubmissionID, err)
	}
	if !submission.IsGraded {
		return nil, fmt.Errorf("submission %d is not yet graded", submission.ID)
	}

	result, err := s.grader.GradeAnswer(ctx, answer, question)
	if err != nil {
		return nil, err
	}

	totalObtained := result.MarksObtained
	totalMarks := result.MarksAllocated
	for _, a := range submission.Answers {
		if a.ID == answer.ID {
			continue
		}
		totalObtained += a.MarksObtained
		totalMarks += a.MarksAllocated
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Answer{}).Where("id = ?", answer.ID).Updates(map[string]interface{}{
			"marks_obtained": result.MarksObtained,
			"feedback":       result.Feedback,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Submission{}).Where("id = ?", submission.ID).Updates(map[string]interface{}{
			"total_marks":    totalMarks,
			"obtained_marks": round2(totalObtained),
			"percentage":     percentageOf(totalObtained, totalMarks),
		}).Error
	}); err != nil {
		log.Error().Err(err).Uint("answerID", answerID).Msg("RegradeAnswer: failed to commit marks")
		return nil, fmt.Errorf("failed to commit regrade for answer %d: %w", answerID, err)
	}

	return result, nil
}

// AnalyzeSubmission runs the optional AI analysis for an already graded
// submission and stores the report. Failures land in the report's error
// field; the committed grade is never touched.
func (s *submissionService) AnalyzeSubmission(ctx context.Context, submissionID uint) (*analysis.Report, error) {
	submission, err := s.submissionRepo.FindByIDWithDetails(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission not found with ID %d: %w", submissionID, err)
	}

	report := s.analyzer.AnalyzeSubmission(ctx, submission)

	if submission.IsGraded {
		result := &model.GradingResult{
			SubmissionID:        submission.ID,
			GradingMethod:       string(s.grader.Strategy()),
			Summary:             report.Summary,
			Strengths:           report.Strengths,
			AreasForImprovement: report.AreasForImprovement,
			Suggestions:         report.Suggestions,
			AnalysisError:       report.Error,
		}
		if existing, err := s.gradingResultRepo.FindBySubmissionID(submission.ID); err == nil {
			result.DetailedScores = existing.DetailedScores
		}
		if err := s.gradingResultRepo.Upsert(result); err != nil {
			log.Warn().Err(err).Uint("submissionID", submissionID).Msg("AnalyzeSubmission: failed to store analysis report")
		}
	}

	return report, nil
}

func (s *submissionService) GetSubmissionResults(submissionID uint) (*dto.SubmissionResultResponse, error) {
	submission, err := s.submissionRepo.FindByIDWithDetails(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission not found with ID %d: %w", submissionID, err)
	}
	if !submission.IsGraded {
		return nil, fmt.Errorf("submission %d is not yet graded", submissionID)
	}

	subResp, err := s.toResponse(submission)
	if err != nil {
		return nil, err
	}
	result := &dto.SubmissionResultResponse{Submission: *subResp}

	if gr, err := s.gradingResultRepo.FindBySubmissionID(submissionID); err == nil {
		result.Analysis = &dto.AnalysisReportResponse{
			Summary:             gr.Summary,
			Strengths:           gr.Strengths,
			AreasForImprovement: gr.AreasForImprovement,
			Suggestions:         gr.Suggestions,
			Error:               gr.AnalysisError,
		}
	}
	return result, nil
}

func (s *submissionService) toResponse(submission *model.Submission) (*dto.SubmissionResponse, error) {
	var resp dto.SubmissionResponse
	if err := copier.Copy(&resp, submission); err != nil {
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	if submission.Exam.ID != 0 {
		resp.ExamTitle = submission.Exam.Title
	}
	return &resp, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentageOf(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := round2(obtained / total * 100)
	if pct > 100 {
		return 100
	}
	return pct
}

func detailedScores(summary *grader.GradingSummary) map[string]float64 {
	scores := make(map[string]float64, len(summary.AnswerResults)*3)
	for _, r := range summary.AnswerResults {
		prefix := fmt.Sprintf("question_%d_", r.QuestionID)
		scores[prefix+"marks"] = r.MarksObtained
		scores[prefix+"keyword_match"] = r.KeywordMatchPercentage
		if r.DensityScore != nil {
			scores[prefix+"density"] = *r.DensityScore
		}
		if r.SimilarityScore != nil {
			scores[prefix+"similarity"] = *r.SimilarityScore
		}
		if r.CompletenessScore != nil {
			scores[prefix+"completeness"] = *r.CompletenessScore
		}
	}
	scores["percentage"] = summary.Percentage
	return scores
}
