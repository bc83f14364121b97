package prompts

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	prompts map[string]Prompt
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{prompts: map[string]Prompt{}}
}

func (r *MemoryRepo) Create(ctx context.Context, p Prompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Fields = p.Fields.Clone()
	r.prompts[p.ID] = p
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, page Page) ([]Prompt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page = page.normalized()
	r.mu.RLock()
	var owned []Prompt
	for _, p := range r.prompts {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if page.Offset >= len(owned) {
		return []Prompt{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(owned) {
		end = len(owned)
	}
	out := make([]Prompt, 0, end-page.Offset)
	for _, p := range owned[page.Offset:end] {
		p.Fields = p.Fields.Clone()
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Prompt, error) {
	if err := ctx.Err(); err != nil {
		return Prompt{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prompts[id]
	if !ok || p.UserID != userID {
		return Prompt{}, ErrNotFound
	}
	p.Fields = p.Fields.Clone()
	return p, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompts[id]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(r.prompts, id)
	return nil
}

func (r *MemoryRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.prompts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}
