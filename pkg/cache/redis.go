package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces page keys.
const DefaultRedisPrefix = "docsite:page"

// Redis stores pages as hashes (body, type, etag, at) so several docsite
// instances share renders.
type Redis struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// RedisOption configures Redis.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the expiration used when Set gets a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.defaultTTL = d
	}
}

// NewRedis creates a Redis page cache. The client lifecycle belongs to the caller.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: DefaultRedisPrefix, defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get reads a page hash.
func (r *Redis) Get(ctx context.Context, key string) (Page, error) {
	fields, err := r.client.HGetAll(ctx, r.key(key)).Result()
	if err != nil {
		return Page{}, err
	}
	body, ok := fields["body"]
	if !ok {
		return Page{}, ErrNotFound
	}

	p := Page{
		Body:        []byte(body),
		ContentType: fields["type"],
		ETag:        fields["etag"],
	}
	if at, err := strconv.ParseInt(fields["at"], 10, 64); err == nil {
		p.RenderedAt = time.Unix(at, 0).UTC()
	}
	return p, nil
}

// Set writes a page hash and its expiry in one transaction.
func (r *Redis) Set(ctx context.Context, key string, page Page, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	k := r.key(key)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k,
			"body", page.Body,
			"type", page.ContentType,
			"etag", page.ETag,
			"at", page.RenderedAt.Unix(),
		)
		if ttl > 0 {
			pipe.Expire(ctx, k, ttl)
		}
		return nil
	})
	return err
}

// Delete drops one page.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Purge drops every page under the prefix using SCAN.
func (r *Redis) Purge(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; the client is closed by its owner.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(key string) string {
	return r.prefix + ":" + key
}

var _ Cache = (*Redis)(nil)
