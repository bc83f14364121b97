package wizardsessions

import (
	"context"
	"sync"
	"time"

	"promptstudio/internal/wizard"
)

type memorySession struct {
	answers   map[string][]string
	expiresAt time.Time
}

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{sessions: map[string]*memorySession{}, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Answers(ctx context.Context, key string) ([]wizard.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(key)
	if sess == nil {
		return nil, nil
	}
	out := make([]wizard.Answer, 0, len(sess.answers))
	for qid, opts := range sess.answers {
		out = append(out, wizard.Answer{QuestionID: qid, SelectedOptionIDs: append([]string(nil), opts...)})
	}
	return out, nil
}

func (s *MemoryStore) SetAnswer(ctx context.Context, key string, a wizard.Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(key)
	if sess == nil {
		sess = &memorySession{answers: map[string][]string{}}
		s.sessions[key] = sess
	}
	sess.answers[a.QuestionID] = append([]string(nil), a.SelectedOptionIDs...)
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// live returns the session for key, dropping it when expired. Caller holds mu.
func (s *MemoryStore) live(key string) *memorySession {
	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, key)
		return nil
	}
	return sess
}
