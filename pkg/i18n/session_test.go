package i18n_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/pkg/i18n"
)

type memoryPref struct {
	mu      sync.Mutex
	code    string
	loadErr error
	saveErr error
	saves   int
}

func (p *memoryPref) Load(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code, p.loadErr
}

func (p *memoryPref) Save(_ context.Context, code i18n.Code) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	p.code = string(code)
	return nil
}

type recordingRefresher struct {
	mu    sync.Mutex
	codes []i18n.Code
}

func (r *recordingRefresher) Refresh(_ context.Context, code i18n.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
	return nil
}

func (r *recordingRefresher) calls() []i18n.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]i18n.Code(nil), r.codes...)
}

func TestSession_Init(t *testing.T) {
	t.Parallel()

	t.Run("uses stored preference", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)
		ref := &recordingRefresher{}

		sess := i18n.NewSession(store,
			i18n.WithPreference(&memoryPref{code: "fr"}),
			i18n.WithLocale("de-DE"),
			i18n.WithRefresher(ref),
		)
		code, err := sess.Init(t.Context())
		require.NoError(t, err)

		assert.Equal(t, i18n.French, code)
		assert.Equal(t, i18n.French, sess.Active())
		assert.True(t, store.Loaded(i18n.French))
		assert.Equal(t, "Documentation", sess.T("nav.documentation"))
		assert.Equal(t, []i18n.Code{i18n.French}, ref.calls())
	})

	t.Run("unavailable storage falls back to locale", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)

		sess := i18n.NewSession(store,
			i18n.WithPreference(&memoryPref{code: "fr", loadErr: errors.New("storage disabled")}),
			i18n.WithLocale("zh-HK"),
		)
		code, err := sess.Init(t.Context())
		require.NoError(t, err)
		assert.Equal(t, i18n.ChineseTraditional, code)
		assert.Equal(t, "Docs", sess.T("nav.documentation"))
	})

	t.Run("accept-language header in quality order", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)

		sess := i18n.NewSession(store,
			i18n.WithAcceptLanguage("fr;q=0.5, de-DE;q=0.8"),
			i18n.WithLocale("fr-FR"),
		)
		code, err := sess.Init(t.Context())
		require.NoError(t, err)
		assert.Equal(t, i18n.German, code)
	})

	t.Run("renders literal keys when nothing loads", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.FetcherFunc(func(context.Context, string) ([]byte, error) {
			return nil, i18n.ErrFetchFailed
		}))
		require.NoError(t, err)

		sess := i18n.NewSession(store)
		code, err := sess.Init(t.Context())
		require.NoError(t, err)
		assert.Equal(t, i18n.English, code)
		assert.Equal(t, "nav.documentation", sess.T("nav.documentation"))
	})
}

func TestSession_Change(t *testing.T) {
	t.Parallel()

	t.Run("same code does nothing", func(t *testing.T) {
		t.Parallel()
		f := newCountingFetcher(siteFS())
		store, err := i18n.NewStore(f)
		require.NoError(t, err)
		pref := &memoryPref{}
		ref := &recordingRefresher{}

		sess := i18n.NewSession(store, i18n.WithPreference(pref), i18n.WithRefresher(ref))
		require.NoError(t, sess.Change(t.Context(), i18n.English))

		assert.Equal(t, 0, f.count("assets/locales/en.json"))
		assert.Empty(t, ref.calls())
		assert.Equal(t, 0, pref.saves)
	})

	t.Run("falls back to default and persists", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)
		pref := &memoryPref{}
		ref := &recordingRefresher{}

		sess := i18n.NewSession(store, i18n.WithPreference(pref), i18n.WithRefresher(ref))
		require.NoError(t, sess.Change(t.Context(), i18n.Spanish))

		assert.Equal(t, i18n.Spanish, sess.Active())
		assert.Equal(t, "Docs", sess.T("nav.documentation"))
		assert.Equal(t, "es", pref.code)
		assert.Equal(t, []i18n.Code{i18n.Spanish}, ref.calls())
		assert.Equal(t, "Español", sess.Language().Name)
	})

	t.Run("change back to active is idempotent", func(t *testing.T) {
		t.Parallel()
		f := newCountingFetcher(siteFS())
		store, err := i18n.NewStore(f)
		require.NoError(t, err)
		ref := &recordingRefresher{}

		sess := i18n.NewSession(store, i18n.WithRefresher(ref))
		require.NoError(t, sess.Change(t.Context(), i18n.French))
		require.NoError(t, sess.Change(t.Context(), i18n.French))

		assert.Equal(t, 1, f.count("assets/locales/fr.json"))
		assert.Equal(t, []i18n.Code{i18n.French}, ref.calls())
	})

	t.Run("unsupported code", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)

		sess := i18n.NewSession(store)
		require.ErrorIs(t, sess.Change(t.Context(), "xx"), i18n.ErrUnsupportedLanguage)
		assert.Equal(t, i18n.English, sess.Active())
	})

	t.Run("preference save failure is ignored", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)

		sess := i18n.NewSession(store, i18n.WithPreference(&memoryPref{saveErr: errors.New("quota exceeded")}))
		require.NoError(t, sess.Change(t.Context(), i18n.French))
		assert.Equal(t, i18n.French, sess.Active())
	})

	t.Run("refresher errors are returned", func(t *testing.T) {
		t.Parallel()
		store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
		require.NoError(t, err)
		boom := errors.New("render failed")

		sess := i18n.NewSession(store, i18n.WithRefresher(i18n.RefresherFunc(func(context.Context, i18n.Code) error {
			return boom
		})))
		require.ErrorIs(t, sess.Change(t.Context(), i18n.French), boom)
		assert.Equal(t, i18n.French, sess.Active())
	})

	t.Run("later change supersedes a slower one", func(t *testing.T) {
		t.Parallel()

		slow := make(chan struct{})
		started := make(chan struct{})
		fs := i18n.NewFSFetcher(siteFS())
		store, err := i18n.NewStore(i18n.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
			if name == "assets/locales/fr.json" {
				close(started)
				<-slow
			}
			return fs.Fetch(ctx, name)
		}))
		require.NoError(t, err)
		pref := &memoryPref{}
		ref := &recordingRefresher{}
		sess := i18n.NewSession(store, i18n.WithPreference(pref), i18n.WithRefresher(ref))

		errc := make(chan error, 1)
		go func() { errc <- sess.Change(context.Background(), i18n.French) }()
		<-started

		require.NoError(t, sess.Change(t.Context(), i18n.German))
		close(slow)

		require.ErrorIs(t, <-errc, i18n.ErrSuperseded)
		assert.Equal(t, i18n.German, sess.Active())
		assert.Equal(t, "de", pref.code)
		assert.Equal(t, []i18n.Code{i18n.German}, ref.calls())
		assert.True(t, store.Loaded(i18n.French))
	})

	t.Run("returning to active cancels pending change", func(t *testing.T) {
		t.Parallel()

		slow := make(chan struct{})
		started := make(chan struct{})
		fs := i18n.NewFSFetcher(siteFS())
		store, err := i18n.NewStore(i18n.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
			if name == "assets/locales/fr.json" {
				close(started)
				<-slow
			}
			return fs.Fetch(ctx, name)
		}))
		require.NoError(t, err)
		sess := i18n.NewSession(store)

		errc := make(chan error, 1)
		go func() { errc <- sess.Change(context.Background(), i18n.French) }()
		<-started

		require.NoError(t, sess.Change(t.Context(), i18n.English))
		close(slow)

		require.ErrorIs(t, <-errc, i18n.ErrSuperseded)
		assert.Equal(t, i18n.English, sess.Active())
	})
}

func TestSession_Translator(t *testing.T) {
	t.Parallel()

	store, err := i18n.NewStore(i18n.NewFSFetcher(siteFS()))
	require.NoError(t, err)
	sess := i18n.NewSession(store)
	require.NoError(t, sess.Change(t.Context(), i18n.French))

	tr := sess.Translator()
	assert.Equal(t, i18n.French, tr.Code())
	assert.Equal(t, "Documentation", tr.T("nav.documentation"))
}
