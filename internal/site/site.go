package site

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"time"

	"github.com/sysmanage/docsite/internal"
	"github.com/sysmanage/docsite/pkg/cache"
	"github.com/sysmanage/docsite/pkg/components"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/health"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/logger"
	"github.com/sysmanage/docsite/pkg/markdown"
	"github.com/sysmanage/docsite/pkg/sitepath"
)

// SwitchPath is the language switch route below the site base.
const SwitchPath = "lang/"

// ReturnParam carries the page to go back to after a language switch.
const ReturnParam = "return"

// Site implements internal.Handler for the documentation site.
type Site struct {
	fsys     fs.FS
	store    *i18n.Store
	resolver *sitepath.Resolver
	injector *components.Injector
	applier  *dom.Applier
	markdown *markdown.Renderer
	pages    *cache.Renderer
	logger   *slog.Logger
}

// Option configures a Site.
type Option func(*Site)

// WithResolver sets the path resolver. Defaults to sitepath.New().
func WithResolver(r *sitepath.Resolver) Option {
	return func(s *Site) {
		s.resolver = r
	}
}

// WithInjector sets the chrome injector. Defaults to components.New bound to
// the resolver and the store's languages.
func WithInjector(in *components.Injector) Option {
	return func(s *Site) {
		s.injector = in
	}
}

// WithApplier sets the translation applier.
func WithApplier(a *dom.Applier) Option {
	return func(s *Site) {
		s.applier = a
	}
}

// WithMarkdown sets the renderer used for .md pages.
func WithMarkdown(m *markdown.Renderer) Option {
	return func(s *Site) {
		s.markdown = m
	}
}

// WithCache caches rendered pages. Without it every request renders.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Site) {
		if c != nil {
			s.pages = cache.NewRenderer(c, ttl)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		s.logger = l
	}
}

// New creates a Site serving fsys with translations from store.
func New(fsys fs.FS, store *i18n.Store, opts ...Option) (*Site, error) {
	if fsys == nil {
		return nil, ErrNilFS
	}
	if store == nil {
		return nil, ErrNilStore
	}

	s := &Site{
		fsys:     fsys,
		store:    store,
		resolver: sitepath.New(),
		applier:  dom.NewApplier(),
		markdown: markdown.New(),
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.injector == nil {
		s.injector = components.New(s.resolver, components.WithLanguages(store.Languages()))
	}
	return s, nil
}

// Routes registers the site routes.
func (s *Site) Routes(r internal.Router) {
	prefix := s.prefix()
	r.GET(prefix+"/"+SwitchPath+"{code}", s.switchLanguage)
	r.POST(prefix+"/"+SwitchPath+"{code}", s.switchLanguage)
	r.GET(prefix+"/*", s.serve)
	r.HEAD(prefix+"/*", s.serve)
}

// Checks returns readiness checks: the default language bundle must load and
// the site index must be readable.
func (s *Site) Checks() health.Checks {
	return health.Checks{
		"translations": func(ctx context.Context) error {
			return s.store.Load(ctx, s.store.DefaultLanguage())
		},
		"content": func(context.Context) error {
			_, err := s.find(s.resolver.Base())
			return err
		},
	}
}

// Purge drops every cached page.
func (s *Site) Purge(ctx context.Context) error {
	if s.pages == nil {
		return nil
	}
	return s.pages.Cache().Purge(ctx)
}

// SwitchURL returns the link that switches to code and comes back to pagePath,
// relative to pagePath.
func (s *Site) SwitchURL(pagePath string, code i18n.Code) string {
	href := "/" + SwitchPath + string(code) + "?" + ReturnParam + "=" + url.QueryEscape(pagePath)
	return s.resolver.AdjustLink(href, pagePath)
}

func (s *Site) prefix() string {
	base := s.resolver.Base()
	return base[:len(base)-1]
}
