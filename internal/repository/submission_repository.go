package repository

import (
	"github.com/examly/autograde/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	Update(submission *model.Submission) error
	FindByID(id uint) (*model.Submission, error)
	FindByIDWithDetails(id uint) (*model.Submission, error)
	ExistsForStudentAndExam(studentID, examID uint) (bool, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) Update(submission *model.Submission) error {
	return r.db.Save(submission).Error
}

func (r *submissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindByIDWithDetails(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.
		Preload("Exam").
		Preload("Answers.Question").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) ExistsForStudentAndExam(studentID, examID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count > 0, err
}
