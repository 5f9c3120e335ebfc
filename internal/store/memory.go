package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/shortlinks/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[shortener.Code]*shortener.ShortLink
	byID   map[shortener.LinkID]*shortener.ShortLink
	owned  map[shortener.OwnerID][]shortener.LinkID // creation order
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[shortener.Code]*shortener.ShortLink),
		byID:   make(map[shortener.LinkID]*shortener.ShortLink),
		owned:  make(map[shortener.OwnerID][]shortener.LinkID),
	}
}

func (m *MemoryStore) Insert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byCode[link.Code]; taken {
		return shortener.ErrCodeCollision
	}

	link.ID = shortener.LinkID(uuid.NewString())

	stored := link.Clone()
	m.byCode[stored.Code] = stored
	m.byID[stored.ID] = stored
	m.owned[stored.OwnerID] = append(m.owned[stored.OwnerID], stored.ID)

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return link.Clone(), nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, owner shortener.OwnerID) ([]*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.owned[owner]
	links := make([]*shortener.ShortLink, 0, len(ids))

	for _, id := range ids {
		links = append(links, m.byID[id].Clone())
	}

	return links, nil
}

func (m *MemoryStore) DeleteOwned(_ context.Context, id shortener.LinkID, owner shortener.OwnerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok || link.OwnerID != owner {
		return shortener.ErrNotFound
	}

	delete(m.byID, id)
	delete(m.byCode, link.Code)

	ids := m.owned[owner]
	for i, ownedID := range ids {
		if ownedID == id {
			m.owned[owner] = append(ids[:i:i], ids[i+1:]...)

			break
		}
	}

	if len(m.owned[owner]) == 0 {
		delete(m.owned, owner)
	}

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
