package i18n

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Preference persists the visitor's chosen language across page loads.
type Preference interface {
	// Load returns the stored code, or an empty string when none is stored.
	Load(ctx context.Context) (string, error)
	// Save stores code.
	Save(ctx context.Context, code Code) error
}

// Refresher re-renders translated output after the active language changes.
type Refresher interface {
	Refresh(ctx context.Context, code Code) error
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, code Code) error

// Refresh calls f(ctx, code).
func (f RefresherFunc) Refresh(ctx context.Context, code Code) error {
	return f(ctx, code)
}

// Session tracks the active language of one visitor and coordinates language
// changes between the Store, the persisted preference and the refreshers.
//
// Each Change takes a generation number. A Change whose bundle load completes
// after a newer Change started is superseded: it neither activates its code
// nor persists it, so the most recent request always wins.
type Session struct {
	store      *Store
	selector   *Selector
	pref       Preference
	locale     string
	accept     string
	refreshers []Refresher
	logger     *slog.Logger

	mu      sync.Mutex
	active  Code
	pending Code
	gen     uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPreference sets the preference storage. Without it nothing is persisted.
func WithPreference(p Preference) SessionOption {
	return func(s *Session) {
		s.pref = p
	}
}

// WithLocale sets the browser-supplied locale used when no preference is stored.
func WithLocale(locale string) SessionOption {
	return func(s *Session) {
		s.locale = locale
	}
}

// WithAcceptLanguage sets an Accept-Language header tried, in quality order,
// when no preference is stored. It takes precedence over WithLocale.
func WithAcceptLanguage(header string) SessionOption {
	return func(s *Session) {
		s.accept = header
	}
}

// WithRefresher adds a refresher run after every successful language change.
func WithRefresher(r Refresher) SessionOption {
	return func(s *Session) {
		if r != nil {
			s.refreshers = append(s.refreshers, r)
		}
	}
}

// WithSessionLogger sets the logger used for preference storage failures.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a Session bound to store. The default language is active
// until Init or Change is called.
func NewSession(store *Store, opts ...SessionOption) *Session {
	if store == nil {
		panic("i18n: store is not provided")
	}

	s := &Session{
		store:    store,
		selector: NewSelector(store.Languages()),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		active:   store.DefaultLanguage(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Active returns the active language code.
func (s *Session) Active() Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Language returns the active language.
func (s *Session) Language() Language {
	return s.store.Languages().MustGet(s.Active())
}

// T translates key in the active language.
func (s *Session) T(key string, params ...M) string {
	return s.store.Lookup(s.Active(), key, params...)
}

// Translator returns a Translator bound to the active language.
func (s *Session) Translator() *Translator {
	return s.store.Translator(s.Active())
}

// Init detects the initial language, loads its bundle and runs the refreshers.
// Preference read failures are ignored and detection falls back to the locale.
// Bundle load failures are logged by the Store and never returned.
func (s *Session) Init(ctx context.Context) (Code, error) {
	var preferred string
	if s.pref != nil {
		p, err := s.pref.Load(ctx)
		if err != nil {
			s.logger.DebugContext(ctx, "language preference unavailable", slog.Any("error", err))
		} else {
			preferred = p
		}
	}

	var code Code
	if s.accept != "" {
		code = s.selector.DetectAcceptLanguage(preferred, s.accept)
	} else {
		code = s.selector.DetectInitial(preferred, s.locale)
	}
	_ = s.store.Load(ctx, code)

	s.mu.Lock()
	s.gen++
	s.active = code
	s.pending = ""
	s.mu.Unlock()

	return code, s.refresh(ctx, code)
}

// Change switches the active language.
//
// Changing to the already active code with no change in flight does nothing:
// no fetch, no refresh. Otherwise the bundle is loaded (falling back to the
// default on failure), the code becomes active, is persisted and the
// refreshers run. ErrSuperseded is returned when a newer Change started while
// this one was loading.
func (s *Session) Change(ctx context.Context, code Code) error {
	if !s.store.Languages().Has(code) {
		return ErrUnsupportedLanguage
	}

	s.mu.Lock()
	if code == s.active {
		if s.pending != "" {
			// Drop interest in the in-flight change.
			s.gen++
			s.pending = ""
		}
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.pending = code
	s.mu.Unlock()

	_ = s.store.Load(ctx, code)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.active = code
	s.pending = ""
	s.mu.Unlock()

	if s.pref != nil {
		if err := s.pref.Save(ctx, code); err != nil {
			s.logger.WarnContext(ctx, "failed to persist language preference",
				slog.String("lang", string(code)),
				slog.Any("error", err),
			)
		}
	}

	return s.refresh(ctx, code)
}

func (s *Session) refresh(ctx context.Context, code Code) error {
	var errs []error
	for _, r := range s.refreshers {
		if err := r.Refresh(ctx, code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
