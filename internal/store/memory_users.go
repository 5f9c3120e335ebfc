package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/shortlinks/internal/auth"
)

// MemoryUserStore is an in-memory implementation of auth.UserRepository.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*auth.User
	byEmail map[string]string // email -> id
}

// NewMemoryUserStore creates a new in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryUserStore) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[user.Email]; taken {
		return auth.ErrEmailTaken
	}

	user.ID = uuid.NewString()

	stored := *user
	m.byID[stored.ID] = &stored
	m.byEmail[stored.Email] = stored.ID

	return nil
}

func (m *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	id, ok := m.byEmail[email]
	m.mu.RUnlock()

	if !ok {
		return nil, auth.ErrUserNotFound
	}

	return m.GetByID(ctx, id)
}

func (m *MemoryUserStore) GetByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	found := *user

	return &found, nil
}

// Compile-time check.
var _ auth.UserRepository = (*MemoryUserStore)(nil)
