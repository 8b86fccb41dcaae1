package preference

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sysmanage/docsite/pkg/cookie"
	"github.com/sysmanage/docsite/pkg/i18n"
)

// Cookies stores the preference in a cookie.
type Cookies struct {
	manager *cookie.Manager
	name    string
	maxAge  time.Duration
}

// CookieOption configures Cookies.
type CookieOption func(*Cookies)

// WithCookieName overrides CookieName.
func WithCookieName(name string) CookieOption {
	return func(c *Cookies) {
		if name != "" {
			c.name = name
		}
	}
}

// WithMaxAge overrides DefaultMaxAge.
func WithMaxAge(d time.Duration) CookieOption {
	return func(c *Cookies) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// NewCookies creates a cookie-backed Factory. A nil manager uses cookie.New().
func NewCookies(m *cookie.Manager, opts ...CookieOption) *Cookies {
	if m == nil {
		m = cookie.New()
	}
	c := &Cookies{manager: m, name: CookieName, maxAge: DefaultMaxAge}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// For binds the store to a request.
func (c *Cookies) For(w http.ResponseWriter, r *http.Request) i18n.Preference {
	return &cookiePref{store: c, w: w, r: r}
}

type cookiePref struct {
	store *Cookies
	w     http.ResponseWriter
	r     *http.Request
	saved string
}

// Load reads the cookie. A missing cookie is not an error. A value written by
// Save in the same request is returned without waiting for the next request.
func (p *cookiePref) Load(context.Context) (string, error) {
	if p.saved != "" {
		return p.saved, nil
	}
	v, err := p.store.manager.Get(p.r, p.store.name)
	if errors.Is(err, cookie.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save writes the cookie on the response.
func (p *cookiePref) Save(_ context.Context, code i18n.Code) error {
	if p.w == nil {
		return ErrUnavailable
	}
	p.store.manager.Set(p.w, p.store.name, string(code), p.store.maxAge)
	p.saved = string(code)
	return nil
}

var _ Factory = (*Cookies)(nil)
