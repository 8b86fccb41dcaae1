package preference_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/pkg/cookie"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/preference"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	p := preference.NewMemory("")
	code, err := p.Load(t.Context())
	require.NoError(t, err)
	assert.Empty(t, code)

	require.NoError(t, p.Save(t.Context(), i18n.Korean))
	code, err = p.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ko", code)
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	_, err := preference.Disabled{}.Load(t.Context())
	require.ErrorIs(t, err, preference.ErrUnavailable)
	require.ErrorIs(t, preference.Disabled{}.Save(t.Context(), i18n.English), preference.ErrUnavailable)
}

func TestCookies(t *testing.T) {
	t.Parallel()

	t.Run("missing cookie loads empty", func(t *testing.T) {
		t.Parallel()
		p := preference.NewCookies(nil).For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		code, err := p.Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("save writes a year long cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		p := preference.NewCookies(nil).For(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, p.Save(t.Context(), i18n.French))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, preference.CookieName, cookies[0].Name)
		assert.Equal(t, "fr", cookies[0].Value)
		assert.Equal(t, int(preference.DefaultMaxAge/time.Second), cookies[0].MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

		code, err := p.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "fr", code)
	})

	t.Run("reads the request cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: preference.CookieName, Value: "ja"})

		code, err := preference.NewCookies(nil).For(httptest.NewRecorder(), r).Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "ja", code)
	})

	t.Run("forged signed cookie is an error", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret("0123456789abcdef0123456789abcdef"))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "lang", Value: "ja"})

		_, err := preference.NewCookies(m, preference.WithCookieName("lang")).For(httptest.NewRecorder(), r).Load(t.Context())
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("no response writer", func(t *testing.T) {
		t.Parallel()
		p := preference.NewCookies(nil).For(nil, httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, p.Save(t.Context(), i18n.French), preference.ErrUnavailable)
	})
}

func unreachableRedis(t *testing.T) goredis.UniversalClient {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis(t *testing.T) {
	t.Parallel()

	t.Run("key layout", func(t *testing.T) {
		t.Parallel()
		s := preference.NewRedis(nil, nil)
		assert.Equal(t, "docsite:pref:abc", s.Key("abc"))
		assert.Equal(t, "x:abc", preference.NewRedis(nil, nil, preference.WithKeyPrefix("x")).Key("abc"))
	})

	t.Run("new visitor loads empty without a round trip", func(t *testing.T) {
		t.Parallel()
		s := preference.NewRedis(unreachableRedis(t), nil)
		code, err := s.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)).Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("invalid visitor id is ignored", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: preference.VisitorCookieName, Value: "not-a-uuid"})

		s := preference.NewRedis(unreachableRedis(t), nil)
		code, err := s.For(httptest.NewRecorder(), r).Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("unreachable server is reported as unavailable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: preference.VisitorCookieName, Value: uuid.NewString()})

		s := preference.NewRedis(unreachableRedis(t), nil)
		_, err := s.For(httptest.NewRecorder(), r).Load(t.Context())
		require.ErrorIs(t, err, preference.ErrUnavailable)
	})

	t.Run("save issues a visitor id", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		s := preference.NewRedis(unreachableRedis(t), nil)

		err := s.For(w, httptest.NewRequest(http.MethodGet, "/", nil)).Save(t.Context(), i18n.German)
		require.ErrorIs(t, err, preference.ErrUnavailable)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, preference.VisitorCookieName, cookies[0].Name)
		_, perr := uuid.Parse(cookies[0].Value)
		require.NoError(t, perr)
	})
}
