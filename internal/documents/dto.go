package documents

import (
	"encoding/json"
	"time"
)

// SaveRequest is the create-or-update request body. DocumentID present means
// update in place; absent means create.
type SaveRequest struct {
	OwnerID    string          `json:"ownerId"`
	DocumentID string          `json:"documentId,omitempty"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
}

// DuplicateRequest asks for a copy of an existing document.
type DuplicateRequest struct {
	OwnerID    string `json:"ownerId"`
	DocumentID string `json:"documentId"`
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Title:     doc.Title,
		Type:      doc.Type,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
