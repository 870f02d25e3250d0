package exports

import (
	"encoding/json"
	"time"
)

type ShareRequest struct {
	OwnerID    string `json:"ownerId"`
	DocumentID string `json:"documentId"`
}

type ExportRequest struct {
	OwnerID    string `json:"ownerId"`
	DocumentID string `json:"documentId"`
}

type ShareResponse struct {
	Token    string `json:"token"`
	ShareURL string `json:"shareUrl"`
}

type SharedDocumentResponse struct {
	Token     string          `json:"token"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toSharedResponse(link ShareLink) SharedDocumentResponse {
	return SharedDocumentResponse{
		Token:     link.Token,
		Title:     link.Title,
		Type:      link.DocType,
		Content:   link.Content,
		CreatedAt: link.CreatedAt,
	}
}
