package internal

import (
	"log/slog"
	"net/http"

	"github.com/sysmanage/docsite/pkg/health"
)

// Option configures the App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFound sets the handler for unmatched routes.
func WithNotFound(h HandlerFunc) Option {
	return func(a *App) {
		a.notFound = h
	}
}

// WithMiddleware adds global middleware, applied in order.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHTTPMiddleware adds standard net/http middleware, run before any
// Middleware added with WithMiddleware.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.httpMW = append(a.httpMW, mw...)
	}
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithHealth enables the liveness and readiness endpoints. Failing optional
// checks only degrade readiness.
func WithHealth(checks, optional health.Checks) Option {
	return func(a *App) {
		a.healthOn = true
		a.checks = checks
		a.optional = optional
	}
}
