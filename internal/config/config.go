package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sysmanage/docsite/pkg/cookie"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/logger"
	"github.com/sysmanage/docsite/pkg/storage"
)

var (
	ErrParse   = errors.New("config: parse failed")
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the docsite server configuration.
type Config struct {
	Addr     string `env:"DOCSITE_ADDR" envDefault:":8080"`
	Root     string `env:"DOCSITE_ROOT" envDefault:"site"`
	BasePath string `env:"DOCSITE_BASE_PATH" envDefault:"/"`
	DocsDir  string `env:"DOCSITE_DOCS_DIR" envDefault:"docs"`

	DefaultLang string   `env:"DOCSITE_DEFAULT_LANG" envDefault:"en"`
	Languages   []string `env:"DOCSITE_LANGUAGES" envSeparator:","`

	SanitizeHTML bool   `env:"DOCSITE_SANITIZE_HTML"`
	CookieSecret string `env:"DOCSITE_COOKIE_SECRET"`
	CookieSecure bool   `env:"DOCSITE_COOKIE_SECURE"`

	// CacheTTL of zero disables the rendered page cache.
	CacheTTL  time.Duration `env:"DOCSITE_CACHE_TTL" envDefault:"10m"`
	CacheSize int           `env:"DOCSITE_CACHE_SIZE" envDefault:"512"`

	RequestTimeout  time.Duration `env:"DOCSITE_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"DOCSITE_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	RedisURL string `env:"REDIS_URL"`

	Storage storage.Config
	Log     logger.Config
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	return parse(env.Options{})
}

// FromMap parses configuration from vars only, ignoring the environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("%w: DOCSITE_BASE_PATH must start with /: %q", ErrInvalid, c.BasePath)
	}
	if c.CookieSecret != "" && len(c.CookieSecret) < cookie.MinSecretLength {
		return fmt.Errorf("%w: DOCSITE_COOKIE_SECRET must be at least %d bytes", ErrInvalid, cookie.MinSecretLength)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: DOCSITE_CACHE_TTL must not be negative", ErrInvalid)
	}

	langs, err := c.LanguageSet()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !langs.Has(i18n.Code(c.DefaultLang)) {
		return fmt.Errorf("%w: DOCSITE_DEFAULT_LANG %q is not a supported language", ErrInvalid, c.DefaultLang)
	}
	return nil
}

// LanguageSet returns the configured languages: every built-in language, or
// the subset named by DOCSITE_LANGUAGES, with DefaultLang as default.
func (c *Config) LanguageSet() (*i18n.Languages, error) {
	all := i18n.DefaultLanguages()

	if len(c.Languages) == 0 {
		return all.WithDefault(i18n.Code(c.DefaultLang))
	}

	list := make([]i18n.Language, 0, len(c.Languages))
	for _, raw := range c.Languages {
		code := i18n.Code(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		lang, ok := all.Get(code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", i18n.ErrUnsupportedLanguage, code)
		}
		list = append(list, lang)
	}
	return i18n.NewLanguages(i18n.Code(c.DefaultLang), list...)
}
