package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultBundlePath returns the site-relative location of a language bundle.
func DefaultBundlePath(code Code) string {
	return "assets/locales/" + string(code) + ".json"
}

// Store fetches and caches per-language bundles and resolves keys against
// them with fallback to the default language.
//
// Loaded bundles are cached for the lifetime of the Store and never evicted
// or replaced. Concurrent loads of the same code share one in-flight fetch.
// Store is safe for concurrent use.
type Store struct {
	fetcher           Fetcher
	langs             *Languages
	logger            *slog.Logger
	bundlePath        func(Code) string
	missingKeyHandler func(code Code, key string)
	bundles           map[Code]*Bundle
	fetchTimeout      time.Duration
	group             singleflight.Group
	mu                sync.RWMutex
}

// StoreOption configures the Store during construction.
type StoreOption func(*Store) error

// NewStore creates a Store that loads bundles through fetcher.
func NewStore(fetcher Fetcher, opts ...StoreOption) (*Store, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}

	s := &Store{
		fetcher:    fetcher,
		langs:      DefaultLanguages(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		bundlePath: DefaultBundlePath,
		bundles:    make(map[Code]*Bundle),

		fetchTimeout: DefaultFetchTimeout,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return s, nil
}

// WithLanguages sets the supported language set. Defaults to DefaultLanguages().
func WithLanguages(langs *Languages) StoreOption {
	return func(s *Store) error {
		if langs == nil {
			return ErrEmptyLanguage
		}
		s.langs = langs
		return nil
	}
}

// WithDefaultLanguage changes the fallback language of the configured set.
// Apply it after WithLanguages.
func WithDefaultLanguage(code Code) StoreOption {
	return func(s *Store) error {
		if code == "" {
			return ErrEmptyLanguage
		}
		langs, err := s.langs.WithDefault(code)
		if err != nil {
			return err
		}
		s.langs = langs
		return nil
	}
}

// DefaultFetchTimeout bounds one shared bundle fetch.
const DefaultFetchTimeout = 10 * time.Second

// WithFetchTimeout bounds a bundle fetch. The fetch is shared by every caller
// loading the same code, so it runs detached from their contexts.
func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *Store) error {
		if d > 0 {
			s.fetchTimeout = d
		}
		return nil
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// WithBundlePath overrides where bundles live relative to the site root.
func WithBundlePath(fn func(Code) string) StoreOption {
	return func(s *Store) error {
		if fn != nil {
			s.bundlePath = fn
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key resolves in neither
// the requested nor the default bundle.
func WithMissingKeyHandler(fn func(code Code, key string)) StoreOption {
	return func(s *Store) error {
		s.missingKeyHandler = fn
		return nil
	}
}

// WithBundles preloads a bundle, marking its language as loaded.
func WithBundles(code Code, tree map[string]any) StoreOption {
	return func(s *Store) error {
		if code == "" {
			return ErrEmptyLanguage
		}
		s.bundles[code] = NewBundle(code, tree)
		return nil
	}
}

// Languages returns the supported language set.
func (s *Store) Languages() *Languages {
	return s.langs
}

// DefaultLanguage returns the fallback language code.
func (s *Store) DefaultLanguage() Code {
	return s.langs.Default()
}

// Loaded reports whether the bundle for code is cached.
func (s *Store) Loaded(code Code) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bundles[code]
	return ok
}

// Bundle returns the cached bundle for code.
func (s *Store) Bundle(code Code) (*Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bundles[code]
	return b, ok
}

// Codes returns the codes of every cached bundle in the language set order.
func (s *Store) Codes() []Code {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]Code, 0, len(s.bundles))
	for _, code := range s.langs.Codes() {
		if _, ok := s.bundles[code]; ok {
			codes = append(codes, code)
		}
	}
	for code := range s.bundles {
		if !s.langs.Has(code) {
			codes = append(codes, code)
		}
	}
	return slices.Clip(codes)
}

// Load makes the bundle for code available. It is a no-op when the bundle is
// already cached.
//
// When the bundle cannot be fetched or parsed the failure is logged and, unless
// code is the default language, the default bundle is loaded instead so lookups
// keep resolving. An error is returned only when neither bundle is available
// or ctx is done; it is never fatal: lookups then return the raw key.
func (s *Store) Load(ctx context.Context, code Code) error {
	if code == "" {
		return ErrEmptyLanguage
	}

	err := s.load(ctx, code)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	s.logger.WarnContext(ctx, "failed to load translations",
		slog.String("lang", string(code)),
		slog.Any("error", err),
	)

	def := s.langs.Default()
	if code == def {
		return errors.Join(ErrLoadFailed, err)
	}

	if fallbackErr := s.load(ctx, def); fallbackErr != nil {
		s.logger.ErrorContext(ctx, "failed to load fallback translations",
			slog.String("lang", string(def)),
			slog.Any("error", fallbackErr),
		)
		return errors.Join(ErrLoadFailed, err, fallbackErr)
	}

	return nil
}

// load fetches and caches one bundle, sharing the fetch with concurrent callers.
// The fetch does not inherit the cancellation of whichever caller started it;
// each caller stops waiting when its own ctx is done.
func (s *Store) load(ctx context.Context, code Code) error {
	if s.Loaded(code) {
		return nil
	}

	ch := s.group.DoChan(string(code), func() (any, error) {
		if s.Loaded(code) {
			return nil, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		name := s.bundlePath(code)
		data, err := s.fetcher.Fetch(fetchCtx, name)
		if err != nil {
			return nil, err
		}

		bundle, err := ParseBundle(code, name, data)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if _, exists := s.bundles[code]; !exists {
			s.bundles[code] = bundle
		}
		s.mu.Unlock()

		s.logger.DebugContext(fetchCtx, "translations loaded",
			slog.String("lang", string(code)),
			slog.Int("keys", bundle.Len()),
		)
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Lookup resolves key for code. It falls back to the default bundle and then
// to the key itself. {{param}} placeholders are replaced from params.
func (s *Store) Lookup(code Code, key string, params ...M) string {
	if v, ok := s.resolve(code, key); ok {
		return replacePlaceholdersWithMerge(v, params...)
	}

	if def := s.langs.Default(); code != def {
		if v, ok := s.resolve(def, key); ok {
			return replacePlaceholdersWithMerge(v, params...)
		}
	}

	if s.missingKeyHandler != nil {
		s.missingKeyHandler(code, key)
	}

	return key
}

// Translator returns a Translator bound to code.
func (s *Store) Translator(code Code) *Translator {
	return NewTranslator(s, code)
}

func (s *Store) resolve(code Code, key string) (string, bool) {
	s.mu.RLock()
	b, ok := s.bundles[code]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	return b.Get(key)
}
