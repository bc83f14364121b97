package criteria

import "context"

type Repo interface {
	// Create inserts a criterion; a name already used by the same user yields
	// ErrDuplicate.
	Create(ctx context.Context, c Criterion) error
	ListForUser(ctx context.Context, userID string) ([]Criterion, error)
	Delete(ctx context.Context, userID, id string) error
}
