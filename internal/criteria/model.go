package criteria

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("criterion not found")
	ErrDuplicate   = errors.New("criterion with this name already exists")
	ErrInvalidName = errors.New("criterion name must be 1-60 characters")
)

const (
	maxNameRunes        = 60
	maxDescriptionRunes = 500
)

// Criterion is a user-defined evaluation criterion offered alongside the
// built-in options of multi-select criteria fields.
type Criterion struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
