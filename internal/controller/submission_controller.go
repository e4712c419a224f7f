package controller

import (
	"net/http"
	"strings"

	"github.com/examly/autograde/internal/dto"
	"github.com/examly/autograde/internal/grader"
	"github.com/examly/autograde/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SubmissionController struct {
	submissionService service.SubmissionService
}

func NewSubmissionController(submissionService service.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// SubmitExam godoc
// @Summary Submit answers for an exam and grade them
// @Tags Submissions
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param submission body dto.SubmitExamRequest true "Student answers"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/submissions [post]
func (c *SubmissionController) SubmitExam(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	submission, err := c.submissionService.SubmitExam(ctx.Request.Context(), examID, req)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("SubmitExam: service error")
		ctx.JSON(statusForSubmitError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// GradeSubmission godoc
// @Summary Grade (or re-grade) a submission
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} grader.GradingSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Scoring resource unavailable"
// @Router /submissions/{submission_id}/grade [post]
func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	submissionID, ok := parseIDParam(ctx, "submission_id")
	if !ok {
		return
	}

	summary, err := c.submissionService.GradeSubmission(ctx.Request.Context(), submissionID)
	if err != nil {
		log.Warn().Err(err).Uint("submissionID", submissionID).Msg("GradeSubmission: service error")
		switch {
		case grader.IsValidation(err):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case grader.IsScoring(err):
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
		default:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// RegradeAnswer godoc
// @Summary Re-score a single answer of a graded submission
// @Description Useful after adjusting a question's keywords or model answer. Submission totals are updated to match.
// @Tags Submissions
// @Produce json
// @Param answer_id path int true "Answer ID"
// @Success 200 {object} grader.AnswerResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Scoring resource unavailable"
// @Router /answers/{answer_id}/grade [post]
func (c *SubmissionController) RegradeAnswer(ctx *gin.Context) {
	answerID, ok := parseIDParam(ctx, "answer_id")
	if !ok {
		return
	}

	result, err := c.submissionService.RegradeAnswer(ctx.Request.Context(), answerID)
	if err != nil {
		log.Warn().Err(err).Uint("answerID", answerID).Msg("RegradeAnswer: service error")
		switch {
		case grader.IsValidation(err) || strings.Contains(err.Error(), "not yet graded"):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case grader.IsScoring(err):
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
		default:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetSubmissionResults godoc
// @Summary Get a graded submission with its per-answer feedback and analysis
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 400 {object} dto.ErrorResponse "Submission not yet graded"
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions/{submission_id}/results [get]
func (c *SubmissionController) GetSubmissionResults(ctx *gin.Context) {
	submissionID, ok := parseIDParam(ctx, "submission_id")
	if !ok {
		return
	}

	result, err := c.submissionService.GetSubmissionResults(submissionID)
	if err != nil {
		if strings.Contains(err.Error(), "not yet graded") {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// AnalyzeSubmission godoc
// @Summary Run the optional AI analysis for a graded submission
// @Description Produces a qualitative report. Any provider failure is reported in the response's error field and never affects the committed grade.
// @Tags Submissions
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.AnalysisReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions/{submission_id}/analysis [post]
func (c *SubmissionController) AnalyzeSubmission(ctx *gin.Context) {
	submissionID, ok := parseIDParam(ctx, "submission_id")
	if !ok {
		return
	}

	report, err := c.submissionService.AnalyzeSubmission(ctx.Request.Context(), submissionID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.AnalysisReportResponse{
		Summary:             report.Summary,
		Strengths:           report.Strengths,
		AreasForImprovement: report.AreasForImprovement,
		Suggestions:         report.Suggestions,
		Error:               report.Error,
	})
}

func statusForSubmitError(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(msg, "already submitted") || strings.Contains(msg, "not published") ||
		strings.Contains(msg, "does not belong") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
