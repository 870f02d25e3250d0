package exports

import "errors"

var (
	// ErrShareNotFound covers both unknown tokens and tokens whose rows were
	// removed when the owner's account was deleted.
	ErrShareNotFound = errors.New("share link not found")

	// ErrInvalidInput marks request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
