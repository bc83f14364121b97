package wizardsessions

import (
	"context"
	"time"

	"promptstudio/internal/wizard"
)

// DefaultTTL is how long an idle wizard session is kept. Every write
// refreshes it.
const DefaultTTL = 24 * time.Hour

// Store keeps the answers recorded so far, per session key. A session key is
// a user id or "guest:<id>". Answers come back in no particular order.
type Store interface {
	Answers(ctx context.Context, key string) ([]wizard.Answer, error)
	SetAnswer(ctx context.Context, key string, a wizard.Answer) error
	Reset(ctx context.Context, key string) error
}
