package exports

import (
	"context"
	"sync"
)

// MemoryShareRepo is an in-memory ShareRepo used in tests and when no
// database is configured.
type MemoryShareRepo struct {
	mu    sync.RWMutex
	links map[string]ShareLink
}

func NewMemoryShareRepo() *MemoryShareRepo {
	return &MemoryShareRepo{links: make(map[string]ShareLink)}
}

func (r *MemoryShareRepo) Create(ctx context.Context, link ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link.Content = append([]byte(nil), link.Content...)
	r.links[link.Token] = link
	return nil
}

func (r *MemoryShareRepo) GetByToken(ctx context.Context, token string) (ShareLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, ok := r.links[token]
	if !ok {
		return ShareLink{}, ErrShareNotFound
	}
	link.Content = append([]byte(nil), link.Content...)
	return link, nil
}

func (r *MemoryShareRepo) ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for token, link := range r.links {
		if link.OwnerID == guestOwnerID {
			link.OwnerID = authedOwnerID
			r.links[token] = link
			moved++
		}
	}
	return moved, nil
}

var _ ShareRepo = (*MemoryShareRepo)(nil)
