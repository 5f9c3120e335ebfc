package shortener

import "errors"

var (
	// ErrInvalidInput is returned before any write when the request is malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers both missing links and links owned by someone else.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeCollision is reported by a Repository when the code is already taken.
	// Directory retries on it and never returns it to callers.
	ErrCodeCollision = errors.New("short code already in use")

	// ErrRetriesExhausted means no unique code was found within the attempt bound.
	ErrRetriesExhausted = errors.New("could not assign a unique short code")
)
