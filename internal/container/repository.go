package container

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/serroba/shortlinks/internal/store"
)

// RepositoryPackage provides the link and user repositories of the selected backend.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case BackendPostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			return store.NewPostgresStore(pg.Pool), nil
		case BackendRedis:
			r, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			return store.NewRedisStore(r.Client), nil
		case BackendMongo:
			m, err := do.Invoke[*Mongo](i)
			if err != nil {
				return nil, err
			}

			links := store.NewMongoStore(m.Database)
			if err = ensureIndexes(links.EnsureIndexes); err != nil {
				return nil, err
			}

			return links, nil
		case BackendMemory:
			return store.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", opts.Store)
		}
	})

	do.Provide(injector, func(i *do.Injector) (auth.UserRepository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case BackendPostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			return store.NewPostgresUserStore(pg.Pool), nil
		case BackendRedis:
			r, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			return store.NewRedisUserStore(r.Client), nil
		case BackendMongo:
			m, err := do.Invoke[*Mongo](i)
			if err != nil {
				return nil, err
			}

			users := store.NewMongoUserStore(m.Database)
			if err = ensureIndexes(users.EnsureIndexes); err != nil {
				return nil, err
			}

			return users, nil
		case BackendMemory:
			return store.NewMemoryUserStore(), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", opts.Store)
		}
	})
}

func ensureIndexes(ensure func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return ensure(ctx)
}

// ShortenerPackage provides the link directory.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Directory, error) {
		opts := do.MustInvoke[*Options](i)

		repo, err := do.Invoke[shortener.Repository](i)
		if err != nil {
			return nil, err
		}

		generator, err := shortener.NewCodeGenerator(opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewDirectory(repo, generator, shortener.WithMaxAttempts(opts.MaxAttempts)), nil
	})
}

// AuthPackage provides the token issuer and the account service.
func AuthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*auth.TokenIssuer, error) {
		opts := do.MustInvoke[*Options](i)

		ttl, err := time.ParseDuration(opts.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("token ttl: %w", err)
		}

		return auth.NewTokenIssuer(opts.JWTSecret, "shortlinks", ttl)
	})

	do.Provide(injector, func(i *do.Injector) (*auth.Service, error) {
		users, err := do.Invoke[auth.UserRepository](i)
		if err != nil {
			return nil, err
		}

		tokens, err := do.Invoke[*auth.TokenIssuer](i)
		if err != nil {
			return nil, err
		}

		return auth.NewService(users, tokens), nil
	})
}
