package prompts

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("prompt not found")
	ErrInvalidFormat = errors.New("invalid export format")
	ErrTitleTooLong  = errors.New("title too long")
)

// Repo persists saved prompts. Lookups are always scoped to the owner.
type Repo interface {
	Create(ctx context.Context, p Prompt) error
	List(ctx context.Context, userID string, page Page) ([]Prompt, error)
	Get(ctx context.Context, userID, id string) (Prompt, error)
	Delete(ctx context.Context, userID, id string) error
	CountForUser(ctx context.Context, userID string) (int, error)
}
