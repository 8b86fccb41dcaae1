package internal_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/internal"
	"github.com/sysmanage/docsite/pkg/health"
)

type pages struct{}

func (pages) Routes(r internal.Router) {
	r.GET("/ok", func(w http.ResponseWriter, _ *http.Request) error {
		_, err := io.WriteString(w, "ok")
		return err
	})
	r.GET("/missing", func(http.ResponseWriter, *http.Request) error {
		return internal.ErrNotFound(errors.New("no such page"))
	})
	r.GET("/boom", func(http.ResponseWriter, *http.Request) error {
		return errors.New("boom")
	})
	r.GET("/late", func(w http.ResponseWriter, _ *http.Request) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("after write")
	})
	r.Route("/api", func(r internal.Router) {
		r.GET("/tagged", func(w http.ResponseWriter, req *http.Request) error {
			_, err := io.WriteString(w, w.Header().Get("X-Order"))
			return err
		}, tag("a"), tag("b"))
	})
}

func tag(v string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Add("X-Order", v)
			return next(w, r)
		}
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(pages{}))

	rec := serve(t, app, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(t, app, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")

	rec = serve(t, app, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")

	rec = serve(t, app, http.MethodGet, "/late")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestApp_RouteMiddlewareOrder(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(pages{}))
	rec := serve(t, app, http.MethodGet, "/api/tagged")
	assert.Equal(t, []string{"a", "b"}, rec.Header().Values("X-Order"))
}

func TestApp_GlobalMiddlewareAndErrorHandler(t *testing.T) {
	t.Parallel()

	var handled error
	app := internal.New(
		internal.WithHandlers(pages{}),
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				if r.URL.Query().Has("deny") {
					return internal.ErrBadRequest("denied", nil)
				}
				return next(w, r)
			}
		}),
		internal.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			handled = err
			w.WriteHeader(internal.StatusOf(err))
		}),
	)

	rec := serve(t, app, http.MethodGet, "/ok?deny")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Error(t, handled)
	assert.Equal(t, "denied", handled.Error())
}

func TestApp_NotFoundAndHealth(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithNotFound(func(w http.ResponseWriter, _ *http.Request) error {
			w.WriteHeader(http.StatusNotFound)
			_, err := io.WriteString(w, "custom")
			return err
		}),
		internal.WithHealth(
			health.Checks{"bundles": func(context.Context) error { return nil }},
			health.Checks{"redis": func(context.Context) error { return errors.New("down") }},
		),
	)

	rec := serve(t, app, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom", rec.Body.String())

	rec = serve(t, app, http.MethodGet, internal.LivenessPath)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, app, http.MethodGet, internal.ReadinessPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Degraded", rec.Body.String())
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, internal.StatusOf(nil))
	assert.Equal(t, http.StatusNotFound, internal.StatusOf(fmt.Errorf("wrap: %w", internal.ErrNotFound(nil))))
	assert.Equal(t, http.StatusGatewayTimeout, internal.StatusOf(fmt.Errorf("render: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, internal.StatusOf(errors.New("x")))
}

func TestApp_RunGracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hookRan := make(chan struct{})

	app := internal.New(internal.WithHandlers(pages{}))
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx, ln.Addr().String(),
			internal.Listener(ln),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				close(hookRan)
				return nil
			}),
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/ok")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	<-hookRan
}

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := internal.NewResponseWriter(rec)
	assert.Same(t, w, internal.NewResponseWriter(w))
	assert.False(t, internal.Written(w))

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("tea"))

	assert.True(t, internal.Written(w))
	assert.False(t, internal.Written(rec))
	assert.Equal(t, http.StatusTeapot, w.Status())
	assert.Equal(t, int64(3), w.Size())
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
