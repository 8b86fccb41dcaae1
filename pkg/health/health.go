package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// Checks maps a check name to its probe. A failing check makes the service
// unhealthy.
type Checks map[string]CheckFunc

// Response is the readiness report.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one probe.
type Check struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger   *slog.Logger
	optional Checks
	timeout  time.Duration
}

// Option configures the readiness handler.
type Option func(*config)

// WithTimeout bounds the whole check run.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOptional adds checks whose failure only degrades the service, e.g. a
// shared cache the site can run without.
func WithOptional(checks Checks) Option {
	return func(c *config) {
		c.optional = checks
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes required and optional checks concurrently.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(checks)+len(cfg.optional) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var mu sync.Mutex
	resp.Checks = make(map[string]Check, len(checks)+len(cfg.optional))

	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, check CheckFunc, optional bool) {
		g.Go(func() error {
			start := time.Now()
			res := Check{Status: StatusHealthy, Optional: optional}
			if err := check(gctx); err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Bool("optional", optional),
					slog.String("error", err.Error()),
				)
			}
			res.Duration = time.Since(start).Round(time.Microsecond).String()

			mu.Lock()
			defer mu.Unlock()
			resp.Checks[name] = res
			if res.Status == StatusUnhealthy {
				switch {
				case !optional:
					resp.Status = StatusUnhealthy
				case resp.Status == StatusHealthy:
					resp.Status = StatusDegraded
				}
			}
			return nil
		})
	}

	for name, check := range checks {
		run(name, check, false)
	}
	for name, check := range cfg.optional {
		run(name, check, true)
	}
	_ = g.Wait()

	return resp
}
