package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is an essay/short-answer question. ExpectedAnswer is the model
// answer the grader scores against; Keywords may be empty, in which case the
// grader extracts its own set from ExpectedAnswer.
type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	ExamID         uint           `json:"exam_id" gorm:"not null;index"`
	QuestionText   string         `json:"question_text" gorm:"type:text;not null"`
	ExpectedAnswer string         `json:"expected_answer" gorm:"type:text;not null"`
	Keywords       []string       `json:"keywords" gorm:"serializer:json"`
	Marks          int            `json:"marks" gorm:"not null"`
	OrderInExam    int            `json:"order_in_exam" gorm:"not null;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
