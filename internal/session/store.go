package session

import (
	"context"
	"encoding/json"

	"resume-builder/internal/documents"
)

// Credential identifies the caller to the document store. It is injected
// explicitly on every call; there is no ambient client-wide auth state.
type Credential struct {
	Token   string // bearer JWT for signed-in users
	GuestID string // guest identity when no token is held
}

// SaveRequest is a create-or-update request against the document store.
// DocumentID empty means create a new record.
type SaveRequest struct {
	OwnerID    string
	DocumentID string
	Title      string
	Type       string
	Content    json.RawMessage
}

// Store is the document store surface a session needs. Implemented remotely by
// RemoteStore and, in tests, by fakes.
type Store interface {
	Save(ctx context.Context, cred Credential, req SaveRequest) (documents.Document, error)
	Get(ctx context.Context, cred Credential, ownerID, documentID string) (documents.Document, error)
}
