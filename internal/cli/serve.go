package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sysmanage/docsite/internal"
	"github.com/sysmanage/docsite/internal/config"
	"github.com/sysmanage/docsite/internal/site"
	"github.com/sysmanage/docsite/middlewares"
	"github.com/sysmanage/docsite/pkg/cache"
	"github.com/sysmanage/docsite/pkg/cookie"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/health"
	"github.com/sysmanage/docsite/pkg/logger"
	"github.com/sysmanage/docsite/pkg/markdown"
	"github.com/sysmanage/docsite/pkg/preference"
	"github.com/sysmanage/docsite/pkg/redis"
	"github.com/sysmanage/docsite/pkg/sanitizer"
	"github.com/sysmanage/docsite/pkg/sitepath"
)

const sentryFlushTimeout = 2 * time.Second

// Server is a fully wired docsite application.
type Server struct {
	App    *internal.App
	Site   *site.Site
	Logger *slog.Logger

	closers []func(context.Context) error
}

// Close releases the cache and Redis connections.
func (s *Server) Close(ctx context.Context) error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewServer wires configuration into an App: content source, translation
// store, preference storage, page cache and middleware.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	srv := &Server{Logger: log}

	fsys, err := Content(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(cfg, fsys, log)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx, store.DefaultLanguage()); err != nil {
		log.WarnContext(ctx, "default translations unavailable at startup", slog.Any("error", err))
	}

	var rdb goredis.UniversalClient
	if cfg.RedisURL != "" {
		if rdb, err = redis.Open(ctx, cfg.RedisURL); err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, func(context.Context) error { return rdb.Close() })
	}

	cookies := cookieManager(cfg)
	var prefs preference.Factory = preference.NewCookies(cookies)
	if rdb != nil {
		prefs = preference.NewRedis(rdb, cookies)
	}

	resolver := sitepath.New(sitepath.WithBase(cfg.BasePath), sitepath.WithDocsDir(cfg.DocsDir))
	var applierOpts []dom.Option
	if cfg.SanitizeHTML {
		applierOpts = append(applierOpts, dom.WithHTMLFilter(sanitizer.Translation))
	}

	siteOpts := []site.Option{
		site.WithResolver(resolver),
		site.WithApplier(dom.NewApplier(applierOpts...)),
		site.WithMarkdown(markdown.New(markdown.WithSanitize(cfg.SanitizeHTML))),
		site.WithLogger(log),
	}
	if cfg.CacheTTL > 0 {
		var pages cache.Cache
		if rdb != nil {
			pages = cache.NewRedis(rdb, cache.WithRedisDefaultTTL(cfg.CacheTTL))
		} else {
			pages = cache.NewMemory(cache.WithDefaultTTL(cfg.CacheTTL), cache.WithMaxEntries(cfg.CacheSize))
		}
		srv.closers = append([]func(context.Context) error{func(context.Context) error { return pages.Close() }}, srv.closers...)
		siteOpts = append(siteOpts, site.WithCache(pages, cfg.CacheTTL))
	}

	if srv.Site, err = site.New(fsys, store, siteOpts...); err != nil {
		return nil, err
	}

	optional := health.Checks{}
	if rdb != nil {
		optional["redis"] = redis.Check(rdb)
	}

	srv.App = internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(log),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Language(store, prefs, middlewares.WithLanguageLogger(log)),
		),
		internal.WithHealth(srv.Site.Checks(), optional),
		internal.WithHandlers(srv.Site),
	)
	return srv, nil
}

// Serve runs the server until ctx is cancelled or a signal arrives.
func Serve(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.LanguageExtractor())
	defer logger.Flush(sentryFlushTimeout)

	srv, err := NewServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	return srv.App.Run(ctx, cfg.Addr,
		internal.ShutdownTimeout(cfg.ShutdownTimeout),
		internal.ShutdownHook(srv.Close),
	)
}

func cookieManager(cfg *config.Config) *cookie.Manager {
	opts := []cookie.Option{
		cookie.WithPath(cfg.BasePath),
		cookie.WithSecure(cfg.CookieSecure),
	}
	if cfg.CookieSecret != "" {
		opts = append(opts, cookie.WithSecret(cfg.CookieSecret))
	}
	return cookie.New(opts...)
}
