package analytics

import (
	"context"
	"time"
)

type Repo interface {
	Insert(ctx context.Context, event Event) error
	Summary(ctx context.Context, since time.Time) (Summary, error)
}
