package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultMaxAttempts is how many codes Create tries before giving up.
const DefaultMaxAttempts = 5

// Directory creates, resolves, lists and deletes short links.
// It relies on the Repository to reject duplicate codes and regenerates on collision.
type Directory struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
	now          func() time.Time
}

// Option configures a Directory.
type Option func(*Directory)

// WithMaxAttempts bounds the number of codes tried per Create. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(d *Directory) {
		if n >= 1 {
			d.maxAttempts = n
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

// NewDirectory creates a Directory backed by store.
func NewDirectory(store Repository, generator CodeGenerator, opts ...Option) *Directory {
	d := &Directory{
		store:        store,
		generateCode: generator,
		maxAttempts:  DefaultMaxAttempts,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// MaxAttempts returns the configured attempt bound.
func (d *Directory) MaxAttempts() int {
	return d.maxAttempts
}

// Create validates destinationURL and persists a new link under a fresh code.
// Only ErrCodeCollision triggers another attempt. When every attempt collides the
// error wraps ErrRetriesExhausted and no link is returned.
func (d *Directory) Create(ctx context.Context, destinationURL string, owner OwnerID) (*ShortLink, error) {
	if err := ValidateDestination(destinationURL); err != nil {
		return nil, err
	}

	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	createdAt := d.now().UTC()
	attempts := 0

	var link *ShortLink

	backoff := retry.WithMaxRetries(uint64(d.maxAttempts-1), immediately())

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		candidate := &ShortLink{
			Code:           Code(d.generateCode()),
			DestinationURL: destinationURL,
			OwnerID:        owner,
			CreatedAt:      createdAt,
		}

		if err := d.store.Insert(ctx, candidate); err != nil {
			if errors.Is(err, ErrCodeCollision) {
				return retry.RetryableError(err)
			}

			return err
		}

		link = candidate

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCodeCollision) {
			return nil, fmt.Errorf("%w after %d attempts", ErrRetriesExhausted, attempts)
		}

		return nil, fmt.Errorf("insert short link: %w", err)
	}

	return link, nil
}

// Resolve returns the link for code. Codes are matched exactly, case included.
func (d *Directory) Resolve(ctx context.Context, code Code) (*ShortLink, error) {
	if code == "" {
		return nil, ErrNotFound
	}

	return d.store.GetByCode(ctx, code)
}

// ListByOwner returns every link owned by owner, oldest first.
func (d *Directory) ListByOwner(ctx context.Context, owner OwnerID) ([]*ShortLink, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	return d.store.ListByOwner(ctx, owner)
}

// DeleteOwned removes the link only if owner created it. Missing links and
// links owned by someone else both yield ErrNotFound.
func (d *Directory) DeleteOwned(ctx context.Context, id LinkID, owner OwnerID) error {
	if id == "" || owner == "" {
		return ErrNotFound
	}

	return d.store.DeleteOwned(ctx, id, owner)
}

// immediately is a backoff with no delay between attempts.
func immediately() retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
}
