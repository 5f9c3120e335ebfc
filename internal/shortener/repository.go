package shortener

import "context"

// Repository is the durable store behind the Directory.
//
// Implementations must enforce code uniqueness atomically: of two concurrent
// Inserts carrying the same code, exactly one succeeds and the other returns
// ErrCodeCollision. Nothing is ever overwritten.
type Repository interface {
	// Insert persists link and assigns link.ID.
	Insert(ctx context.Context, link *ShortLink) error

	// GetByCode returns ErrNotFound when no active link carries code.
	GetByCode(ctx context.Context, code Code) (*ShortLink, error)

	// ListByOwner returns the owner's links oldest first.
	ListByOwner(ctx context.Context, owner OwnerID) ([]*ShortLink, error)

	// DeleteOwned hard-deletes the link only when both id and owner match,
	// and returns ErrNotFound otherwise.
	DeleteOwned(ctx context.Context, id LinkID, owner OwnerID) error
}
