package controller

import (
	"net/http"
	"strconv"

	"github.com/examly/autograde/internal/dto"
	"github.com/examly/autograde/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(examService service.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// CreateExam godoc
// @Summary Create an exam with its questions
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam body dto.CreateExamRequest true "Exam definition"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	exam, err := c.examService.CreateExam(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateExam: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create exam", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// GetAllExams godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Success 200 {array} dto.ExamResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams [get]
func (c *ExamController) GetAllExams(ctx *gin.Context) {
	exams, err := c.examService.GetAllExams()
	if err != nil {
		log.Error().Err(err).Msg("GetAllExams: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve exams", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExamDetails godoc
// @Summary Get an exam with its questions
// @Tags Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExamDetails(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}
	exam, err := c.examService.GetExamDetails(examID)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("GetExamDetails: exam not found")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
