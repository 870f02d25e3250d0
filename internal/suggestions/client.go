// Package suggestions generates resume text fragments with an LLM. Generated
// text is inserted into content by the editing client; nothing here touches
// the document store.
package suggestions

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("suggestion provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
