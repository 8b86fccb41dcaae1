package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sysmanage/docsite/pkg/health"
	"github.com/sysmanage/docsite/pkg/logger"
)

// Server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 60 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// Health endpoint paths.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// App owns routing, middleware and server lifecycle. It is immutable after New.
type App struct {
	router       chi.Router
	logger       *slog.Logger
	errorHandler ErrorHandler
	notFound     HandlerFunc
	checks       health.Checks
	optional     health.Checks
	middlewares  []Middleware
	handlers     []Handler
	httpMW       []func(http.Handler) http.Handler
	healthOn     bool
}

// New creates an App.
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler(a.logger)
	}
	a.setupRoutes()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi router.
func (a *App) Router() chi.Router {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves on addr until ctx is cancelled or SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context, addr string, opts ...RunOption) error {
	cfg := runConfig{
		handler:         a,
		address:         addr,
		logger:          a.logger,
		shutdownTimeout: defaultShutdownTimeout,
		baseCtx:         ctx,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return runServer(cfg)
}

func (a *App) setupRoutes() {
	for _, mw := range a.httpMW {
		a.router.Use(mw)
	}
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFound != nil {
		a.router.NotFound(a.adaptHandler(a.notFound))
	}

	if a.healthOn {
		a.router.Get(LivenessPath, health.LivenessHandler())
		a.router.Get(ReadinessPath, health.ReadinessHandler(a.checks,
			health.WithOptional(a.optional),
			health.WithLogger(a.logger),
		))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// adaptHandler runs h and renders its error when nothing was written yet.
func (a *App) adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w)
		if err := h(rw, r); err != nil {
			a.handleError(rw, r, err)
		}
	}
}

// adaptMiddleware turns an error-returning middleware into chi middleware.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(func(w http.ResponseWriter, r *http.Request) error {
			next.ServeHTTP(w, r)
			return nil
		})
		return a.adaptHandler(wrapped)
	}
}

func (a *App) handleError(w *ResponseWriter, r *http.Request, err error) {
	if w.Written() {
		a.logger.WarnContext(r.Context(), "error after response started",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		return
	}
	a.errorHandler(w, r, err)
}

// DefaultErrorHandler logs server errors and writes a plain text status page.
func DefaultErrorHandler(log *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Any("error", err),
			)
		}

		msg := http.StatusText(status)
		if he, ok := err.(*HTTPError); ok && status < http.StatusInternalServerError {
			msg = he.Message
		}
		http.Error(w, msg, status)
	}
}
