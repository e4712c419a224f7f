package grader

import (
	"errors"
	"fmt"
)

// ===== GRADING ERRORS =====

var (
	ErrNilSubmission   = errors.New("submission is nil")
	ErrMissingQuestion = errors.New("answer has no associated question")
)

// ValidationError reports malformed grading input (missing question, invalid
// marks allocation). It is surfaced before any scoring begins.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Field, e.Message)
}

// ScoringError means a scorer could not execute, typically because the
// embedding resource is unavailable. It is fatal for the whole grading call:
// no partial marks are committed, and the caller may retry or fall back to the
// lexical strategy.
type ScoringError struct {
	Stage string
	Err   error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed at %s: %v", e.Stage, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

func newScoringError(stage string, err error) error {
	return &ScoringError{Stage: stage, Err: err}
}

// IsValidation checks if err represents a grading input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrNilSubmission) || errors.Is(err, ErrMissingQuestion)
}

// IsScoring checks if err represents a scorer execution failure.
func IsScoring(err error) bool {
	var se *ScoringError
	return errors.As(err, &se)
}
