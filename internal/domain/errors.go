package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrNoQuestions is returned when filtering leaves nothing to ask.
	ErrNoQuestions = errors.New("no questions match the requested settings")
	// ErrAttemptNotFound is returned when an attempt ID is unknown or already finished.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptNotCompleted is returned when results are requested before completion.
	ErrAttemptNotCompleted = errors.New("attempt not completed")
	// ErrSourceTooShort rejects quiz generation from insufficient source text.
	ErrSourceTooShort = errors.New("source text is too short to generate a quiz")
	// ErrNotEnoughMaterial means the model judged the source unusable for a quiz.
	ErrNotEnoughMaterial = errors.New("source text did not contain enough material to generate a quiz")
)
