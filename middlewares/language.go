package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sysmanage/docsite/internal"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/logger"
	"github.com/sysmanage/docsite/pkg/preference"
)

type sessionKey struct{}

// DefaultLanguageParam is the query parameter that switches language for the
// request and persists the choice.
const DefaultLanguageParam = "lang"

// LanguageConfig configures Language.
type LanguageConfig struct {
	Logger *slog.Logger
	Param  string
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageParam renames the switching query parameter. Empty disables it.
func WithLanguageParam(name string) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Param = name
	}
}

// WithLanguageLogger sets the logger for preference failures.
func WithLanguageLogger(l *slog.Logger) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Logger = l
	}
}

// Language starts an i18n.Session per request: the stored preference wins,
// then Accept-Language, then the default language. A ?lang= parameter naming
// a supported language switches and persists it. The session is stored in the
// request context.
func Language(store *i18n.Store, prefs preference.Factory, opts ...LanguageOption) internal.Middleware {
	cfg := &LanguageConfig{Param: DefaultLanguageParam, Logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}
	if prefs == nil {
		prefs = preference.FactoryFunc(func(http.ResponseWriter, *http.Request) i18n.Preference {
			return preference.Disabled{}
		})
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			ctx := r.Context()
			sess := i18n.NewSession(store,
				i18n.WithPreference(prefs.For(w, r)),
				i18n.WithAcceptLanguage(r.Header.Get("Accept-Language")),
				i18n.WithSessionLogger(cfg.Logger),
			)
			_, _ = sess.Init(ctx)

			if cfg.Param != "" {
				if v := r.URL.Query().Get(cfg.Param); v != "" {
					if code, ok := store.Languages().Match(v); ok {
						_ = sess.Change(ctx, code)
					}
				}
			}

			w.Header().Add("Vary", "Accept-Language, Cookie")
			w.Header().Set("Content-Language", dom.LangTag(sess.Active()))

			return next(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
		}
	}
}

// GetSession returns the request's language session, or nil when the
// Language middleware did not run.
func GetSession(ctx context.Context) *i18n.Session {
	s, _ := ctx.Value(sessionKey{}).(*i18n.Session)
	return s
}

// GetLanguage returns the request's active language code, or "".
func GetLanguage(ctx context.Context) i18n.Code {
	if s := GetSession(ctx); s != nil {
		return s.Active()
	}
	return ""
}

// LanguageExtractor adds "lang" to log records.
func LanguageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if code := GetLanguage(ctx); code != "" {
			return slog.String("lang", string(code)), true
		}
		return slog.Attr{}, false
	}
}
