package exports

import (
	"encoding/json"
	"time"
)

// ShareLink is an immutable, token-addressable snapshot of a document taken at
// share time. Later edits to the source document do not show through.
type ShareLink struct {
	Token      string
	OwnerID    string
	DocumentID string
	Title      string
	DocType    string
	Content    json.RawMessage
	CreatedAt  time.Time
}
