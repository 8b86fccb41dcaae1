package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sysmanage/docsite/pkg/i18n"
)

// Page is one rendered, localized page.
type Page struct {
	Body        []byte
	ContentType string
	ETag        string
	RenderedAt  time.Time

	// NoStore marks a page that is served once but never cached.
	NoStore bool
}

// NewPage builds a Page and derives its ETag from the body.
func NewPage(body []byte, contentType string) Page {
	sum := sha256.Sum256(body)
	return Page{
		Body:        body,
		ContentType: contentType,
		ETag:        `"` + hex.EncodeToString(sum[:12]) + `"`,
		RenderedAt:  time.Now().UTC(),
	}
}

// Cache stores rendered pages by Key.
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// cache default, negative never expires.
type Cache interface {
	Get(ctx context.Context, key string) (Page, error)
	Set(ctx context.Context, key string, page Page, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Purge(ctx context.Context) error
	Close() error
}

// Key identifies the rendering of path in lang.
func Key(lang i18n.Code, path string) string {
	return string(lang) + ":" + path
}

// RenderTimeout bounds one shared render.
const RenderTimeout = 30 * time.Second

// Renderer renders pages on cache misses, sharing one render between
// concurrent requests for the same key.
type Renderer struct {
	cache Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewRenderer wraps c. ttl is passed to Set for every rendered page.
func NewRenderer(c Cache, ttl time.Duration) *Renderer {
	return &Renderer{cache: c, ttl: ttl}
}

// Get returns the cached page for key, or renders and caches it.
// Render errors are returned and nothing is cached; neither are pages marked
// NoStore. Cache failures only cost a re-render.
//
// The render is shared by every caller waiting on key, so it runs detached
// from their contexts. Each caller stops waiting when its own ctx is done.
func (r *Renderer) Get(ctx context.Context, key string, render func(ctx context.Context) (Page, error)) (Page, bool, error) {
	if p, err := r.cache.Get(ctx, key); err == nil {
		return p, true, nil
	}

	ch := r.group.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RenderTimeout)
		defer cancel()

		p, err := render(rctx)
		if err != nil {
			return nil, err
		}
		if !p.NoStore {
			_ = r.cache.Set(rctx, key, p, r.ttl)
		}
		return p, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Page{}, false, res.Err
		}
		return res.Val.(Page), false, nil
	case <-ctx.Done():
		return Page{}, false, ctx.Err()
	}
}

// Cache returns the underlying cache.
func (r *Renderer) Cache() Cache {
	return r.cache
}
