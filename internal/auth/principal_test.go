package auth_test

import (
	"context"
	"testing"

	"github.com/serroba/shortlinks/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalFromContext(t *testing.T) {
	t.Run("returns stored principal", func(t *testing.T) {
		ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "u1", Email: "a@b.c"})

		p, ok := auth.PrincipalFromContext(ctx)

		assert.True(t, ok)
		assert.Equal(t, "u1", p.UserID)
	})

	t.Run("missing principal", func(t *testing.T) {
		_, ok := auth.PrincipalFromContext(context.Background())

		assert.False(t, ok)
	})

	t.Run("principal without user id", func(t *testing.T) {
		ctx := auth.WithPrincipal(context.Background(), auth.Principal{Email: "a@b.c"})

		_, ok := auth.PrincipalFromContext(ctx)

		assert.False(t, ok)
	})
}
