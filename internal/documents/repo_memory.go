package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database is
// configured and by tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document // document id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Document),
	}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.Content = cloneRaw(doc.Content)
	r.data[doc.ID] = doc
	return nil
}

// Update overwrites title and content of a record owned by doc.OwnerID.
func (r *MemoryRepo) Update(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[doc.ID]
	if !ok || existing.OwnerID != doc.OwnerID {
		return Document{}, ErrNotFound
	}
	existing.Title = doc.Title
	existing.Content = cloneRaw(doc.Content)
	if doc.UpdatedAt.After(existing.UpdatedAt) {
		existing.UpdatedAt = doc.UpdatedAt
	}
	r.data[doc.ID] = existing
	return existing, nil
}

// GetByID returns a document scoped by (id, ownerID).
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[documentID]
	if !ok || doc.OwnerID != ownerID {
		return Document{}, ErrNotFound
	}
	doc.Content = cloneRaw(doc.Content)
	return doc, nil
}

// ListByOwner returns documents for an owner, most recently updated first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Document, 0)
	for _, doc := range r.data {
		if doc.OwnerID == ownerID {
			doc.Content = cloneRaw(doc.Content)
			out = append(out, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a record scoped by (id, ownerID); absent ids are ignored.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.data[documentID]; ok && doc.OwnerID == ownerID {
		delete(r.data, documentID)
	}
	return nil
}

// ClaimGuest reassigns all documents from a guest owner to an authenticated
// one and returns how many moved.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for id, doc := range r.data {
		if doc.OwnerID == guestOwnerID {
			doc.OwnerID = authedOwnerID
			r.data[id] = doc
			moved++
		}
	}
	return moved, nil
}

func cloneRaw(raw []byte) []byte {
	if raw == nil {
		return nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
