package preference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sysmanage/docsite/pkg/cookie"
	"github.com/sysmanage/docsite/pkg/i18n"
)

// VisitorCookieName is the cookie holding the visitor id of the Redis store.
const VisitorCookieName = "docsite-visitor"

// DefaultKeyPrefix namespaces preference keys.
const DefaultKeyPrefix = "docsite:pref"

// Redis stores preferences in Redis keyed by a random visitor id.
type Redis struct {
	client  redis.UniversalClient
	cookies *cookie.Manager
	prefix  string
	ttl     time.Duration
}

// RedisOption configures Redis.
type RedisOption func(*Redis)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets how long a stored preference lives. Defaults to DefaultMaxAge.
func WithTTL(d time.Duration) RedisOption {
	return func(s *Redis) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// NewRedis creates a Redis-backed Factory. The visitor id cookie is written
// through m; a nil manager uses cookie.New().
func NewRedis(client redis.UniversalClient, m *cookie.Manager, opts ...RedisOption) *Redis {
	if m == nil {
		m = cookie.New()
	}
	s := &Redis{client: client, cookies: m, prefix: DefaultKeyPrefix, ttl: DefaultMaxAge}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key for a visitor id.
func (s *Redis) Key(visitor string) string {
	return s.prefix + ":" + visitor
}

// For binds the store to a request.
func (s *Redis) For(w http.ResponseWriter, r *http.Request) i18n.Preference {
	p := &redisPref{store: s, w: w}
	if id, err := s.cookies.Get(r, VisitorCookieName); err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			p.visitor = id
		}
	}
	return p
}

type redisPref struct {
	store   *Redis
	w       http.ResponseWriter
	visitor string
}

// Load returns the stored code for the visitor, or "" for a new visitor.
func (p *redisPref) Load(ctx context.Context) (string, error) {
	if p.visitor == "" {
		return "", nil
	}
	code, err := p.store.client.Get(ctx, p.store.Key(p.visitor)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}
	return code, nil
}

// Save stores code, issuing a visitor id first when the request had none.
func (p *redisPref) Save(ctx context.Context, code i18n.Code) error {
	if p.visitor == "" {
		if p.w == nil {
			return ErrUnavailable
		}
		p.visitor = uuid.NewString()
		p.store.cookies.Set(p.w, VisitorCookieName, p.visitor, p.store.ttl)
	}
	if err := p.store.client.Set(ctx, p.store.Key(p.visitor), string(code), p.store.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

var _ Factory = (*Redis)(nil)
