package documents

import "context"

// Repo defines persistence operations for documents. Every read, update and
// delete is scoped by (id, ownerID); an ownership mismatch surfaces as
// ErrNotFound, never as another owner's record.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	// Update overwrites title and content of an existing record and refreshes
	// UpdatedAt. It returns the stored document, or ErrNotFound when no record
	// matches (id, ownerID).
	Update(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, ownerID, documentID string) (Document, error)
	// ListByOwner returns all documents for an owner, most recently updated
	// first, each id exactly once.
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	// Delete removes the record iff owned by ownerID. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, ownerID, documentID string) error
}
