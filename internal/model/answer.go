package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds a candidate answer to one question. MarksAllocated is copied
// from Question.Marks at submission time; MarksObtained and Feedback are
// written by the grader and stay zero/empty until grading runs.
type Answer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SubmissionID   uint           `json:"submission_id" gorm:"not null;index"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index"`
	Question       Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText     string         `json:"answer_text" gorm:"type:text;not null"`
	MarksObtained  float64        `json:"marks_obtained" gorm:"default:0"`
	MarksAllocated float64        `json:"marks_allocated" gorm:"default:0"`
	Feedback       string         `json:"feedback" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
