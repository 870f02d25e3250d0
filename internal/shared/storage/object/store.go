package object

import (
	"context"
	"io"
)

// ObjectStore is a keyed cache for rendered export artifacts. Keys are
// deterministic, so a second Put for the same key overwrites the first.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
