package dto

import "time"

type QuestionResponse struct {
	ID           uint      `json:"id"`
	ExamID       uint      `json:"exam_id"`
	QuestionText string    `json:"question_text"`
	Marks        int       `json:"marks"`
	OrderInExam  int       `json:"order_in_exam"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExamResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	TotalMarks  int                `json:"total_marks"`
	IsPublished bool               `json:"is_published"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type AnswerResponse struct {
	ID             uint    `json:"id"`
	QuestionID     uint    `json:"question_id"`
	AnswerText     string  `json:"answer_text"`
	MarksObtained  float64 `json:"marks_obtained"`
	MarksAllocated float64 `json:"marks_allocated"`
	Feedback       string  `json:"feedback,omitempty"`
}

type SubmissionResponse struct {
	ID            uint             `json:"id"`
	StudentID     uint             `json:"student_id"`
	ExamID        uint             `json:"exam_id"`
	ExamTitle     string           `json:"exam_title,omitempty"`
	Status        string           `json:"status"`
	TotalMarks    float64          `json:"total_marks"`
	ObtainedMarks float64          `json:"obtained_marks"`
	Percentage    float64          `json:"percentage"`
	IsGraded      bool             `json:"is_graded"`
	SubmittedAt   *time.Time       `json:"submitted_at,omitempty"`
	GradedAt      *time.Time       `json:"graded_at,omitempty"`
	Answers       []AnswerResponse `json:"answers,omitempty"`
}

type AnalysisReportResponse struct {
	Summary             string   `json:"summary,omitempty"`
	Strengths           []string `json:"strengths,omitempty"`
	AreasForImprovement []string `json:"areas_for_improvement,omitempty"`
	Suggestions         []string `json:"suggestions,omitempty"`
	Error               string   `json:"error,omitempty"`
}

type SubmissionResultResponse struct {
	Submission SubmissionResponse      `json:"submission"`
	Analysis   *AnalysisReportResponse `json:"analysis,omitempty"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
