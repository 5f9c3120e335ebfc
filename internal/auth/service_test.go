package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errBackend = errors.New("backend down")

type failingUsers struct{}

func (failingUsers) Create(context.Context, *auth.User) error { return errBackend }

func (failingUsers) GetByEmail(context.Context, string) (*auth.User, error) { return nil, errBackend }

func (failingUsers) GetByID(context.Context, string) (*auth.User, error) { return nil, errBackend }

func newService(t *testing.T, users auth.UserRepository) (*auth.Service, *auth.TokenIssuer) {
	t.Helper()

	tokens, err := auth.NewTokenIssuer("secret", "shortlinks", time.Hour)
	require.NoError(t, err)

	return auth.NewService(users, tokens, auth.WithBcryptCost(bcrypt.MinCost)), tokens
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password and normalized email", func(t *testing.T) {
		users := store.NewMemoryUserStore()
		svc, _ := newService(t, users)

		user, err := svc.Register(ctx, " Ada ", " Ada@Example.COM ", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEqual(t, "hunter22", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

		stored, err := users.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email differing in case is taken", func(t *testing.T) {
		svc, _ := newService(t, store.NewMemoryUserStore())

		_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other", "ADA@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		svc, _ := newService(t, failingUsers{})

		_, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
		assert.ErrorIs(t, err, errBackend)
	})

	t.Run("password over 72 bytes is rejected", func(t *testing.T) {
		users := store.NewMemoryUserStore()
		svc, _ := newService(t, users)

		// 40 runes, 80 bytes.
		_, err := svc.Register(ctx, "Ada", "ada@example.com", strings.Repeat("é", 40))
		require.ErrorIs(t, err, auth.ErrPasswordTooLong)

		_, err = users.GetByEmail(ctx, "ada@example.com")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("password of exactly 72 bytes is accepted", func(t *testing.T) {
		svc, _ := newService(t, store.NewMemoryUserStore())

		_, err := svc.Register(ctx, "Ada", "ada@example.com", strings.Repeat("é", 36))
		assert.NoError(t, err)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService(t, store.NewMemoryUserStore())

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("valid credentials return a token for the user", func(t *testing.T) {
		token, err := svc.Login(ctx, "ADA@example.com", "hunter22")
		require.NoError(t, err)

		p, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, "ada@example.com", p.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("backend failure is not reported as bad credentials", func(t *testing.T) {
		failing, _ := newService(t, failingUsers{})

		_, err := failing.Login(ctx, "ada@example.com", "hunter22")
		require.ErrorIs(t, err, errBackend)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemoryUserStore())

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
