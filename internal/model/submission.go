package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubmissionStatusInProgress = "in_progress"
	SubmissionStatusSubmitted  = "submitted"
	SubmissionStatusGraded     = "graded"
)

type Submission struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	StudentID     uint           `json:"student_id" gorm:"not null;index"`
	ExamID        uint           `json:"exam_id" gorm:"not null;index"`
	Exam          Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Status        string         `json:"status" gorm:"default:'in_progress'"`
	TotalMarks    float64        `json:"total_marks" gorm:"default:0"`
	ObtainedMarks float64        `json:"obtained_marks" gorm:"default:0"`
	Percentage    float64        `json:"percentage" gorm:"default:0"`
	IsGraded      bool           `json:"is_graded" gorm:"default:false;index"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	GradedAt      *time.Time     `json:"graded_at,omitempty"`
	Answers       []Answer       `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
