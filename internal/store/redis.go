package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/shortener"
)

// insertLinkScript claims the code and writes the link hash and its owner
// index entry in one step. Nothing is written when the code is taken.
//
// KEYS[1] code key, KEYS[2] link hash, KEYS[3] owner index;
// ARGV[1] id, ARGV[2] code, ARGV[3] destination, ARGV[4] owner,
// ARGV[5] created at (unix nanos), ARGV[6] owner index score (unix micros).
var insertLinkScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
redis.call('HSET', KEYS[2], 'id', ARGV[1], 'code', ARGV[2], 'destinationUrl', ARGV[3], 'ownerId', ARGV[4], 'createdAt', ARGV[5])
redis.call('ZADD', KEYS[3], ARGV[6], ARGV[1])
return 1
`)

// deleteOwnedScript removes a link, its code claim and its owner index entry
// in one step, but only when the stored owner matches.
//
// KEYS[1] link hash, KEYS[2] owner index; ARGV[1] owner, ARGV[2] code key prefix, ARGV[3] link id.
var deleteOwnedScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'ownerId') ~= ARGV[1] then
	return 0
end
local code = redis.call('HGET', KEYS[1], 'code')
redis.call('DEL', KEYS[1], ARGV[2] .. code)
redis.call('ZREM', KEYS[2], ARGV[3])
return 1
`)

// RedisStore is a Redis implementation of shortener.Repository.
// The code key is the uniqueness authority; it is claimed with SET NX in the
// same script that writes the link.
type RedisStore struct {
	client      *redis.Client
	codePrefix  string // "link:code:" code -> link id
	linkPrefix  string // "link:id:" link id -> hash of fields
	ownerPrefix string // "link:owner:" owner -> sorted set of link ids scored by creation time
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		codePrefix:  "link:code:",
		linkPrefix:  "link:id:",
		ownerPrefix: "link:owner:",
	}
}

func (r *RedisStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	id := uuid.NewString()
	keys := []string{
		r.codePrefix + string(link.Code),
		r.linkPrefix + id,
		r.ownerPrefix + string(link.OwnerID),
	}

	inserted, err := insertLinkScript.Run(ctx, r.client, keys,
		id,
		string(link.Code),
		link.DestinationURL,
		string(link.OwnerID),
		link.CreatedAt.UnixNano(),
		link.CreatedAt.UnixMicro(),
	).Int()
	if err != nil {
		return fmt.Errorf("store short link: %w", err)
	}

	if inserted == 0 {
		return shortener.ErrCodeCollision
	}

	link.ID = shortener.LinkID(id)

	return nil
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	id, err := r.client.Get(ctx, r.codePrefix+string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get short code: %w", err)
	}

	fields, err := r.client.HGetAll(ctx, r.linkPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("get short link: %w", err)
	}

	// The link was deleted between the two reads.
	if len(fields) == 0 {
		return nil, shortener.ErrNotFound
	}

	return linkFromHash(fields), nil
}

func (r *RedisStore) ListByOwner(ctx context.Context, owner shortener.OwnerID) ([]*shortener.ShortLink, error) {
	ids, err := r.client.ZRange(ctx, r.ownerPrefix+string(owner), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	if len(ids) == 0 {
		return []*shortener.ShortLink{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))

	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.linkPrefix+id)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	links := make([]*shortener.ShortLink, 0, len(ids))

	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}

		links = append(links, linkFromHash(fields))
	}

	return links, nil
}

func (r *RedisStore) DeleteOwned(ctx context.Context, id shortener.LinkID, owner shortener.OwnerID) error {
	keys := []string{r.linkPrefix + string(id), r.ownerPrefix + string(owner)}

	deleted, err := deleteOwnedScript.Run(ctx, r.client, keys, string(owner), r.codePrefix, string(id)).Int()
	if err != nil {
		return fmt.Errorf("delete short link: %w", err)
	}

	if deleted == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func linkFromHash(fields map[string]string) *shortener.ShortLink {
	var createdAt time.Time

	if ts, ok := fields["createdAt"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.ShortLink{
		ID:             shortener.LinkID(fields["id"]),
		Code:           shortener.Code(fields["code"]),
		DestinationURL: fields["destinationUrl"],
		OwnerID:        shortener.OwnerID(fields["ownerId"]),
		CreatedAt:      createdAt,
	}
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
