package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/auth"
)

// createUserScript claims the email and writes the user hash in one step.
//
// KEYS[1] email key, KEYS[2] user hash; ARGV[1] id, ARGV[2] name, ARGV[3] email,
// ARGV[4] password hash, ARGV[5] created at (unix nanos).
var createUserScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
redis.call('HSET', KEYS[2], 'id', ARGV[1], 'name', ARGV[2], 'email', ARGV[3], 'passwordHash', ARGV[4], 'createdAt', ARGV[5])
return 1
`)

// RedisUserStore is a Redis implementation of auth.UserRepository.
type RedisUserStore struct {
	client      *redis.Client
	emailPrefix string // "user:email:" email -> user id
	userPrefix  string // "user:id:" user id -> hash of fields
}

// NewRedisUserStore creates a new Redis-backed user store.
func NewRedisUserStore(client *redis.Client) *RedisUserStore {
	return &RedisUserStore{
		client:      client,
		emailPrefix: "user:email:",
		userPrefix:  "user:id:",
	}
}

func (r *RedisUserStore) Create(ctx context.Context, user *auth.User) error {
	id := uuid.NewString()
	keys := []string{r.emailPrefix + user.Email, r.userPrefix + id}

	created, err := createUserScript.Run(ctx, r.client, keys,
		id,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt.UnixNano(),
	).Int()
	if err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	if created == 0 {
		return auth.ErrEmailTaken
	}

	user.ID = id

	return nil
}

func (r *RedisUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	id, err := r.client.Get(ctx, r.emailPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *RedisUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	fields, err := r.client.HGetAll(ctx, r.userPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if len(fields) == 0 {
		return nil, auth.ErrUserNotFound
	}

	var createdAt time.Time

	if nanos, err := strconv.ParseInt(fields["createdAt"], 10, 64); err == nil {
		createdAt = time.Unix(0, nanos).UTC()
	}

	return &auth.User{
		ID:           fields["id"],
		Name:         fields["name"],
		Email:        fields["email"],
		PasswordHash: fields["passwordHash"],
		CreatedAt:    createdAt,
	}, nil
}

// Compile-time check.
var _ auth.UserRepository = (*RedisUserStore)(nil)
