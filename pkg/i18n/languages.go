package i18n

import (
	"fmt"
	"strings"
)

// Code identifies a supported language, e.g. "en" or "zh_CN".
type Code string

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// Codes of the built-in language set.
const (
	English            Code = "en"
	Spanish            Code = "es"
	French             Code = "fr"
	German             Code = "de"
	Italian            Code = "it"
	Portuguese         Code = "pt"
	Dutch              Code = "nl"
	Japanese           Code = "ja"
	ChineseSimplified  Code = "zh_CN"
	ChineseTraditional Code = "zh_TW"
	Korean             Code = "ko"
	Russian            Code = "ru"
	Arabic             Code = "ar"
	Hindi              Code = "hi"
)

// DefaultLang is the fallback language of the built-in set.
const DefaultLang = English

// Language describes one supported language.
type Language struct {
	Code Code   `json:"code"`
	Name string `json:"name"`
	RTL  bool   `json:"rtl"`
}

// Dir returns the value for the HTML dir attribute.
func (l Language) Dir() string {
	if l.RTL {
		return "rtl"
	}
	return "ltr"
}

// Languages is the fixed set of languages a site supports, with one default.
// It is immutable after creation.
type Languages struct {
	index map[Code]int
	list  []Language
	def   Code
}

// NewLanguages creates a language set. The default code must be part of langs.
// Order is preserved; it drives the order of the language switcher.
func NewLanguages(def Code, langs ...Language) (*Languages, error) {
	if def == "" {
		return nil, ErrEmptyLanguage
	}

	l := &Languages{
		index: make(map[Code]int, len(langs)),
		list:  make([]Language, 0, len(langs)),
		def:   def,
	}
	for _, lang := range langs {
		if lang.Code == "" {
			return nil, ErrEmptyLanguage
		}
		if _, dup := l.index[lang.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLanguage, lang.Code)
		}
		if lang.Name == "" {
			lang.Name = string(lang.Code)
		}
		l.index[lang.Code] = len(l.list)
		l.list = append(l.list, lang)
	}

	if _, ok := l.index[def]; !ok {
		return nil, fmt.Errorf("%w: default %q is not in the language set", ErrUnsupportedLanguage, def)
	}

	return l, nil
}

// DefaultLanguages returns the documentation site's built-in language set
// with English as the default.
func DefaultLanguages() *Languages {
	l, err := NewLanguages(DefaultLang,
		Language{Code: English, Name: "English"},
		Language{Code: Spanish, Name: "Español"},
		Language{Code: French, Name: "Français"},
		Language{Code: German, Name: "Deutsch"},
		Language{Code: Italian, Name: "Italiano"},
		Language{Code: Portuguese, Name: "Português"},
		Language{Code: Dutch, Name: "Nederlands"},
		Language{Code: Japanese, Name: "日本語"},
		Language{Code: ChineseSimplified, Name: "简体中文"},
		Language{Code: ChineseTraditional, Name: "繁體中文"},
		Language{Code: Korean, Name: "한국어"},
		Language{Code: Russian, Name: "Русский"},
		Language{Code: Arabic, Name: "العربية", RTL: true},
		Language{Code: Hindi, Name: "हिन्दी"},
	)
	if err != nil {
		panic(err)
	}
	return l
}

// WithDefault returns a copy of the set with a different default code.
func (l *Languages) WithDefault(def Code) (*Languages, error) {
	return NewLanguages(def, l.list...)
}

// Default returns the fallback language code.
func (l *Languages) Default() Code {
	return l.def
}

// Get returns the language for code.
func (l *Languages) Get(code Code) (Language, bool) {
	i, ok := l.index[code]
	if !ok {
		return Language{}, false
	}
	return l.list[i], true
}

// MustGet returns the language for code, or the default language when the
// code is not supported.
func (l *Languages) MustGet(code Code) Language {
	if lang, ok := l.Get(code); ok {
		return lang
	}
	return l.list[l.index[l.def]]
}

// Has reports whether code is supported.
func (l *Languages) Has(code Code) bool {
	_, ok := l.index[code]
	return ok
}

// IsRTL reports whether code is written right to left.
func (l *Languages) IsRTL(code Code) bool {
	lang, ok := l.Get(code)
	return ok && lang.RTL
}

// All returns the languages in declaration order.
func (l *Languages) All() []Language {
	out := make([]Language, len(l.list))
	copy(out, l.list)
	return out
}

// Codes returns the supported codes in declaration order.
func (l *Languages) Codes() []Code {
	out := make([]Code, len(l.list))
	for i, lang := range l.list {
		out[i] = lang.Code
	}
	return out
}

// Match finds a supported code equal to s, ignoring case and treating
// "-" and "_" as the same separator ("zh-tw" matches "zh_TW").
func (l *Languages) Match(s string) (Code, bool) {
	want := normalizeCode(s)
	if want == "" {
		return "", false
	}
	for _, lang := range l.list {
		if normalizeCode(string(lang.Code)) == want {
			return lang.Code, true
		}
	}
	return "", false
}

func normalizeCode(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}
