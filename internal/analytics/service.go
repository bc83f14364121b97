package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promptstudio/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Record stores an event. Failures are logged and swallowed; analytics never
// fails the request that produced it.
func (s *Service) Record(ctx context.Context, userID string, eventType EventType, frameworkID string) {
	if s == nil || s.Repo == nil {
		return
	}
	event := Event{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        eventType,
		FrameworkID: frameworkID,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Insert(ctx, event); err != nil {
		telemetry.Warn("analytics.record_failed", map[string]any{
			"event_type":   string(eventType),
			"framework_id": frameworkID,
			"error":        err,
		})
	}
}

// Summary aggregates events since the given time.
func (s *Service) Summary(ctx context.Context, since time.Time) (Summary, error) {
	return s.Repo.Summary(ctx, since.UTC())
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
