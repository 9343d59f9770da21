package analysis

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNoQuestions = errors.New("no questions to evaluate")
)
