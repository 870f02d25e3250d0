package documents

import "errors"

var (
	// ErrNotFound indicates the document is absent or owned by someone else.
	// The two cases are deliberately indistinguishable so that existence of
	// another owner's documents never leaks.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
