package util

import "errors"

var (
	ErrEmptyQuestion          = errors.New("question text is empty")
	ErrMissingTheme           = errors.New("question theme is not selected")
	ErrIncompleteOptions      = errors.New("all answer options must be filled")
	ErrInvalidQuestionType    = errors.New("unknown question type")
	ErrInvalidDifficulty      = errors.New("difficulty must be 1, 2 or 3")
	ErrCorrectIndexOutOfRange = errors.New("correct index is out of range")

	ErrEmptyFeedback       = errors.New("feedback text is empty")
	ErrInvalidFeedbackType = errors.New("unknown feedback type")

	ErrQuestionNotFound = errors.New("question not found")
)

// IsValidationError reports whether err is caused by bad caller input
// rather than by a failing store.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyQuestion,
		ErrMissingTheme,
		ErrIncompleteOptions,
		ErrInvalidQuestionType,
		ErrInvalidDifficulty,
		ErrCorrectIndexOutOfRange,
		ErrEmptyFeedback,
		ErrInvalidFeedbackType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
