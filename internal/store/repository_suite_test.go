package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniqueCode returns a 7 character code unlikely to exist in a shared backend.
func uniqueCode() shortener.Code {
	return shortener.Code(uuid.NewString()[:7])
}

func newLink(code shortener.Code, owner shortener.OwnerID, createdAt time.Time) *shortener.ShortLink {
	return &shortener.ShortLink{
		Code:           code,
		DestinationURL: "https://example.com/" + string(code),
		OwnerID:        owner,
		CreatedAt:      createdAt,
	}
}

// runRepositorySuite checks the behaviour every shortener.Repository must share.
func runRepositorySuite(t *testing.T, repo shortener.Repository) {
	t.Helper()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("insert assigns id and get returns the link", func(t *testing.T) {
		owner := shortener.OwnerID(uuid.NewString())
		link := newLink(uniqueCode(), owner, base)

		require.NoError(t, repo.Insert(ctx, link))
		assert.NotEmpty(t, link.ID)

		got, err := repo.GetByCode(ctx, link.Code)
		require.NoError(t, err)
		assert.Equal(t, link.ID, got.ID)
		assert.Equal(t, link.Code, got.Code)
		assert.Equal(t, link.DestinationURL, got.DestinationURL)
		assert.Equal(t, owner, got.OwnerID)
		assert.True(t, base.Equal(got.CreatedAt), "created at %v, want %v", got.CreatedAt, base)
	})

	t.Run("duplicate code is a collision", func(t *testing.T) {
		code := uniqueCode()
		first := newLink(code, "owner-a", base)
		require.NoError(t, repo.Insert(ctx, first))

		second := newLink(code, "owner-b", base)
		second.DestinationURL = "https://other.example"

		err := repo.Insert(ctx, second)
		require.ErrorIs(t, err, shortener.ErrCodeCollision)

		got, err := repo.GetByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, first.DestinationURL, got.DestinationURL)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		lower := shortener.Code("cs" + uuid.NewString()[:5])
		upper := shortener.Code("CS" + string(lower[2:]))

		require.NoError(t, repo.Insert(ctx, newLink(lower, "owner-case", base)))
		require.NoError(t, repo.Insert(ctx, newLink(upper, "owner-case", base)))

		got, err := repo.GetByCode(ctx, upper)
		require.NoError(t, err)
		assert.Equal(t, upper, got.Code)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := repo.GetByCode(ctx, uniqueCode())
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("list returns owned links in creation order", func(t *testing.T) {
		owner := shortener.OwnerID(uuid.NewString())
		other := shortener.OwnerID(uuid.NewString())

		var codes []shortener.Code

		for i := range 3 {
			link := newLink(uniqueCode(), owner, base.Add(time.Duration(i)*time.Second))
			require.NoError(t, repo.Insert(ctx, link))
			codes = append(codes, link.Code)
		}

		require.NoError(t, repo.Insert(ctx, newLink(uniqueCode(), other, base)))

		links, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, links, 3)

		for i, link := range links {
			assert.Equal(t, codes[i], link.Code)
			assert.Equal(t, owner, link.OwnerID)
		}
	})

	t.Run("list for owner without links is empty", func(t *testing.T) {
		links, err := repo.ListByOwner(ctx, shortener.OwnerID(uuid.NewString()))
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("delete by owner removes link and frees the code", func(t *testing.T) {
		owner := shortener.OwnerID(uuid.NewString())
		link := newLink(uniqueCode(), owner, base)
		require.NoError(t, repo.Insert(ctx, link))

		require.NoError(t, repo.DeleteOwned(ctx, link.ID, owner))

		_, err := repo.GetByCode(ctx, link.Code)
		require.ErrorIs(t, err, shortener.ErrNotFound)

		links, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, links)

		assert.ErrorIs(t, repo.DeleteOwned(ctx, link.ID, owner), shortener.ErrNotFound)
		assert.NoError(t, repo.Insert(ctx, newLink(link.Code, owner, base)))
	})

	t.Run("delete by another owner is not found and keeps the link", func(t *testing.T) {
		link := newLink(uniqueCode(), "owner-keep", base)
		require.NoError(t, repo.Insert(ctx, link))

		err := repo.DeleteOwned(ctx, link.ID, "intruder")
		require.ErrorIs(t, err, shortener.ErrNotFound)

		_, err = repo.GetByCode(ctx, link.Code)
		assert.NoError(t, err)
	})

	t.Run("delete of malformed id is not found", func(t *testing.T) {
		err := repo.DeleteOwned(ctx, "not-an-id", "owner-keep")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("concurrent inserts of one code have exactly one winner", func(t *testing.T) {
		code := uniqueCode()

		var (
			wg         sync.WaitGroup
			wins       atomic.Int32
			collisions atomic.Int32
		)

		for range 10 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				err := repo.Insert(ctx, newLink(code, "racer", base))
				switch {
				case err == nil:
					wins.Add(1)
				case assert.ErrorIs(t, err, shortener.ErrCodeCollision):
					collisions.Add(1)
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, int32(9), collisions.Load())
	})
}

// runUserRepositorySuite checks the behaviour every auth.UserRepository must share.
func runUserRepositorySuite(t *testing.T, repo auth.UserRepository) {
	t.Helper()

	ctx := context.Background()

	newUser := func() *auth.User {
		return &auth.User{
			Name:         "Test User",
			Email:        uuid.NewString() + "@example.com",
			PasswordHash: "$2a$10$hash",
			CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		}
	}

	t.Run("create assigns id and lookups find the user", func(t *testing.T) {
		user := newUser()
		require.NoError(t, repo.Create(ctx, user))
		assert.NotEmpty(t, user.ID)

		byEmail, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, user.Name, byEmail.Name)
		assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		user := newUser()
		require.NoError(t, repo.Create(ctx, user))

		dup := newUser()
		dup.Email = user.Email

		assert.ErrorIs(t, repo.Create(ctx, dup), auth.ErrEmailTaken)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing-"+uuid.NewString()+"@example.com")
		require.ErrorIs(t, err, auth.ErrUserNotFound)

		_, err = repo.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
