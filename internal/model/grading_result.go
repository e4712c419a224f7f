package model

import (
	"time"

	"gorm.io/gorm"
)

// GradingResult stores the AI-generated qualitative report for a graded
// submission. It never feeds back into the numeric marks.
type GradingResult struct {
	ID                  uint               `gorm:"primarykey" json:"id"`
	SubmissionID        uint               `json:"submission_id" gorm:"not null;uniqueIndex"`
	GradingMethod       string             `json:"grading_method" gorm:"default:'keyword'"`
	Summary             string             `json:"summary" gorm:"type:text"`
	Strengths           []string           `json:"strengths" gorm:"serializer:json"`
	AreasForImprovement []string           `json:"areas_for_improvement" gorm:"serializer:json"`
	Suggestions         []string           `json:"suggestions" gorm:"serializer:json"`
	DetailedScores      map[string]float64 `json:"detailed_scores" gorm:"serializer:json"`
	AnalysisError       string             `json:"analysis_error,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`
}
