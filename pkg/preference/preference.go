package preference

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/sysmanage/docsite/pkg/i18n"
)

// CookieName is the cookie holding the language code.
const CookieName = "sysmanage-docs-language"

// DefaultMaxAge is how long a stored preference is kept.
const DefaultMaxAge = 365 * 24 * time.Hour

var ErrUnavailable = errors.New("preference: storage unavailable")

// Factory binds a preference store to one request.
type Factory interface {
	For(w http.ResponseWriter, r *http.Request) i18n.Preference
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(w http.ResponseWriter, r *http.Request) i18n.Preference

// For calls f(w, r).
func (f FactoryFunc) For(w http.ResponseWriter, r *http.Request) i18n.Preference {
	return f(w, r)
}

// Memory is an in-process preference.
type Memory struct {
	mu   sync.RWMutex
	code string
}

// NewMemory creates a Memory preference holding code.
func NewMemory(code string) *Memory {
	return &Memory{code: code}
}

// Load returns the stored code.
func (m *Memory) Load(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.code, nil
}

// Save stores code.
func (m *Memory) Save(_ context.Context, code i18n.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code = string(code)
	return nil
}

// Disabled is a preference whose storage always fails, like a browser with
// storage turned off.
type Disabled struct{}

// Load always fails.
func (Disabled) Load(context.Context) (string, error) { return "", ErrUnavailable }

// Save always fails.
func (Disabled) Save(context.Context, i18n.Code) error { return ErrUnavailable }

var (
	_ i18n.Preference = (*Memory)(nil)
	_ i18n.Preference = Disabled{}
)
