package documents

import (
	"encoding/json"
	"time"
)

// Document type discriminators. The content blob is a tagged union keyed by
// Type; the store never looks inside it.
const (
	TypeResume      = "resume"
	TypeCoverLetter = "cover_letter"
)

// CopySuffix is appended to the title of a duplicated document.
const CopySuffix = " (Copy)"

// Document is a saved user artifact (resume or cover letter). ID and OwnerID
// are assigned at creation and never change. UpdatedAt is refreshed on every
// successful mutation and is never earlier than CreatedAt.
type Document struct {
	ID        string
	OwnerID   string
	Title     string
	Type      string
	Content   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidType reports whether t is a known document type.
func ValidType(t string) bool {
	return t == TypeResume || t == TypeCoverLetter
}
