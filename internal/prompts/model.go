package prompts

import (
	"time"

	"promptstudio/internal/frameworks"
)

// Prompt is a generated prompt saved to a user's library.
type Prompt struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"userId"`
	FrameworkID string                 `json:"frameworkId"`
	Title       string                 `json:"title"`
	Fields      frameworks.FieldValues `json:"fields"`
	Content     string                 `json:"content"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// SaveInput is what a caller supplies to persist a prompt.
type SaveInput struct {
	Title       string
	FrameworkID string
	Fields      frameworks.FieldValues
}

// Page bounds a List call.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	maxTitleRunes   = 200
)

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
