package service

import (
	"fmt"

	"github.com/examly/autograde/internal/dto"
	"github.com/examly/autograde/internal/model"
	"github.com/examly/autograde/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ExamService interface {
	CreateExam(req dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetAllExams() ([]dto.ExamResponse, error)
	GetExamDetails(examID uint) (*dto.ExamResponse, error)
}

type examService struct {
	examRepo repository.ExamRepository
}

func NewExamService(examRepo repository.ExamRepository) ExamService {
	return &examService{examRepo: examRepo}
}

func (s *examService) CreateExam(req dto.CreateExamRequest) (*dto.ExamResponse, error) {
	exam := model.Exam{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	for _, q := range req.Questions {
		exam.Questions = append(exam.Questions, model.Question{
			QuestionText:   q.QuestionText,
			ExpectedAnswer: q.ExpectedAnswer,
			Keywords:       q.Keywords,
			Marks:          q.Marks,
			OrderInExam:    q.OrderInExam,
		})
		exam.TotalMarks += q.Marks
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateExam: failed to create exam")
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	return s.toResponse(&exam)
}

func (s *examService) GetAllExams() ([]dto.ExamResponse, error) {
	exams, err := s.examRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	responses := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		resp, err := s.toResponse(&exams[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *examService) GetExamDetails(examID uint) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("exam not found with ID %d: %w", examID, err)
	}
	return s.toResponse(exam)
}

// toResponse maps an exam to its DTO. Expected answers and keywords stay out
// of the response; they are grading inputs, not part of the exam surface.
func (s *examService) toResponse(exam *model.Exam) (*dto.ExamResponse, error) {
	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	return &resp, nil
}
