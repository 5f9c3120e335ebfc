package auth

import (
	"context"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository stores accounts. Emails are unique; Create must enforce that
// atomically and return ErrEmailTaken on conflict. Create assigns user.ID.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
