package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sysmanage/docsite/internal"
)

// DefaultTimeout is used when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers observe it through
// r.Context(); a handler failing with the deadline error gets a TimeoutError
// (504) instead.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			err := next(w, r.WithContext(ctx))
			if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
				return &TimeoutError{Duration: d}
			}
			return err
		}
	}
}
