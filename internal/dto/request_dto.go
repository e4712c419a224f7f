package dto

// QuestionForExamRequest is used when creating questions as part of a new exam.
type QuestionForExamRequest struct {
	QuestionText   string   `json:"question_text" binding:"required"`
	ExpectedAnswer string   `json:"expected_answer" binding:"required"`
	Keywords       []string `json:"keywords"`
	Marks          int      `json:"marks" binding:"required,min=1"`
	OrderInExam    int      `json:"order_in_exam" binding:"required,min=1"`
}

type CreateExamRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description"`
	IsPublished bool                     `json:"is_published"`
	Questions   []QuestionForExamRequest `json:"questions" binding:"required,min=1,dive"`
}

type AnswerSubmitRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text" binding:"required"`
}

type SubmitExamRequest struct {
	StudentID uint                  `json:"student_id" binding:"required"`
	Answers   []AnswerSubmitRequest `json:"answers" binding:"required,min=1,dive"`
}
