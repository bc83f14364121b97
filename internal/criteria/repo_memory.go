package criteria

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Criterion
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Criterion{}}
}

func (r *MemoryRepo) Create(ctx context.Context, c Criterion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	r.items[c.ID] = c
	return nil
}

func (r *MemoryRepo) ListForUser(ctx context.Context, userID string) ([]Criterion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Criterion{}
	for _, c := range r.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
