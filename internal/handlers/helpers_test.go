package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/handlers"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errMock = errors.New("mock error")

const testBaseURL = "http://localhost:8888"

// failingStore rejects every operation with errMock.
type failingStore struct{}

func (failingStore) Insert(context.Context, *shortener.ShortLink) error { return errMock }

func (failingStore) GetByCode(context.Context, shortener.Code) (*shortener.ShortLink, error) {
	return nil, errMock
}

func (failingStore) ListByOwner(context.Context, shortener.OwnerID) ([]*shortener.ShortLink, error) {
	return nil, errMock
}

func (failingStore) DeleteOwned(context.Context, shortener.LinkID, shortener.OwnerID) error {
	return errMock
}

// recorder captures published events.
type recorder struct {
	created []*events.LinkCreated
	deleted []*events.LinkDeleted
	err     error
}

func (r *recorder) publishCreated() messaging.Publish[events.LinkCreated] {
	return func(e *events.LinkCreated) error {
		r.created = append(r.created, e)

		return r.err
	}
}

func (r *recorder) publishDeleted() messaging.Publish[events.LinkDeleted] {
	return func(e *events.LinkDeleted) error {
		r.deleted = append(r.deleted, e)

		return r.err
	}
}

// sequence returns a generator that yields codes in order and then repeats the last one.
func sequence(codes ...string) shortener.CodeGenerator {
	i := 0

	return func() string {
		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}

func newLinkHandler(repo shortener.Repository, gen shortener.CodeGenerator, rec *recorder) *handlers.LinkHandler {
	dir := shortener.NewDirectory(repo, gen)

	return handlers.NewLinkHandler(dir, testBaseURL, rec.publishCreated(), rec.publishDeleted(), zap.NewNop())
}

func asUser(id string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: id})
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, status, se.GetStatus())
}

func newMemoryStore() *store.MemoryStore {
	return store.NewMemoryStore()
}
