package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoAnswersProvided = errors.New("no answers provided")
	ErrMissingAnswers    = errors.New("missing answers")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrNoOptionSelected  = errors.New("no option selected")
	ErrInvalidOptionIDs  = errors.New("invalid option ids")
	ErrTooManySelections = errors.New("too many selections")
)

// MissingAnswersError lists questions without an answer, in bank order.
type MissingAnswersError struct {
	QuestionIDs []string
}

func (e *MissingAnswersError) Error() string {
	return "missing answers for questions: " + strings.Join(e.QuestionIDs, ", ")
}

func (e *MissingAnswersError) Is(target error) bool { return target == ErrMissingAnswers }

type InvalidQuestionError struct {
	QuestionID string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("invalid question id: %s", e.QuestionID)
}

func (e *InvalidQuestionError) Is(target error) bool { return target == ErrInvalidQuestionID }

type NoOptionSelectedError struct {
	QuestionID string
}

func (e *NoOptionSelectedError) Error() string {
	return fmt.Sprintf("no option selected for question %s", e.QuestionID)
}

func (e *NoOptionSelectedError) Is(target error) bool { return target == ErrNoOptionSelected }

type InvalidOptionsError struct {
	QuestionID string
	OptionIDs  []string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid option ids for question %s: %s", e.QuestionID, strings.Join(e.OptionIDs, ", "))
}

func (e *InvalidOptionsError) Is(target error) bool { return target == ErrInvalidOptionIDs }

type TooManySelectionsError struct {
	QuestionID string
}

func (e *TooManySelectionsError) Error() string {
	return fmt.Sprintf("question %s allows a single selection", e.QuestionID)
}

func (e *TooManySelectionsError) Is(target error) bool { return target == ErrTooManySelections }
