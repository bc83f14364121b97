package frameworks

import (
	"errors"
	"strings"
)

var (
	ErrInvalidFrameworkType  = errors.New("invalid framework type")
	ErrMissingRequiredFields = errors.New("missing required fields")
)

// MissingFieldsError lists the required fields that were absent or empty.
type MissingFieldsError struct {
	FrameworkID string
	Fields      []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}
