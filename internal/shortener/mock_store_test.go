package shortener_test

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/serroba/shortlinks/internal/shortener"
)

var errMock = errors.New("mock error")

// fakeStore enforces code uniqueness like a real backend and can be told to fail.
type fakeStore struct {
	mu        sync.Mutex
	byCode    map[shortener.Code]*shortener.ShortLink
	order     []shortener.LinkID
	nextID    int
	inserts   int
	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byCode: make(map[shortener.Code]*shortener.ShortLink)}
}

func (f *fakeStore) Insert(_ context.Context, link *shortener.ShortLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inserts++

	if f.insertErr != nil {
		return f.insertErr
	}

	if _, taken := f.byCode[link.Code]; taken {
		return shortener.ErrCodeCollision
	}

	f.nextID++
	link.ID = shortener.LinkID("id-" + strconv.Itoa(f.nextID))
	f.byCode[link.Code] = link.Clone()
	f.order = append(f.order, link.ID)

	return nil
}

func (f *fakeStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	link, ok := f.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return link.Clone(), nil
}

func (f *fakeStore) ListByOwner(_ context.Context, owner shortener.OwnerID) ([]*shortener.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var links []*shortener.ShortLink

	for _, id := range f.order {
		for _, link := range f.byCode {
			if link.ID == id && link.OwnerID == owner {
				links = append(links, link.Clone())
			}
		}
	}

	return links, nil
}

func (f *fakeStore) DeleteOwned(_ context.Context, id shortener.LinkID, owner shortener.OwnerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for code, link := range f.byCode {
		if link.ID == id && link.OwnerID == owner {
			delete(f.byCode, code)

			return nil
		}
	}

	return shortener.ErrNotFound
}

// scriptedGenerator returns codes in order and repeats the last one when exhausted.
func scriptedGenerator(codes ...string) (shortener.CodeGenerator, *int) {
	calls := 0

	return func() string {
		i := calls
		if i >= len(codes) {
			i = len(codes) - 1
		}

		calls++

		return codes[i]
	}, &calls
}
