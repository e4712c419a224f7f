package repository

import (
	"errors"

	"github.com/examly/autograde/internal/model"
	"gorm.io/gorm"
)

type GradingResultRepository interface {
	Upsert(result *model.GradingResult) error
	FindBySubmissionID(submissionID uint) (*model.GradingResult, error)
}

type gradingResultRepository struct {
	db *gorm.DB
}

func NewGradingResultRepository(db *gorm.DB) GradingResultRepository {
	return &gradingResultRepository{db: db}
}

func (r *gradingResultRepository) Upsert(result *model.GradingResult) error {
	var existing model.GradingResult
	err := r.db.Where("submission_id = ?", result.SubmissionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(result).Error
	}
	if err != nil {
		return err
	}
	result.ID = existing.ID
	result.CreatedAt = existing.CreatedAt
	return r.db.Save(result).Error
}

func (r *gradingResultRepository) FindBySubmissionID(submissionID uint) (*model.GradingResult, error) {
	var result model.GradingResult
	if err := r.db.Where("submission_id = ?", submissionID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
