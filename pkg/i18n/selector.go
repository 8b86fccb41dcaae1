package i18n

import "strings"

// Selector picks the language to activate for a visitor.
type Selector struct {
	langs *Languages
}

// NewSelector creates a Selector over langs.
func NewSelector(langs *Languages) *Selector {
	if langs == nil {
		langs = DefaultLanguages()
	}
	return &Selector{langs: langs}
}

// DetectInitial returns the language to use on first render.
//
// A supported preferred code wins. Otherwise locale is matched exactly, then by
// its primary subtag ("en-US" -> en), then through the Chinese variant mapping
// (Taiwan, Hong Kong and Macau regions whatever the script, then Hant -> zh_TW,
// other Chinese -> zh_CN).
// The default language is returned when nothing matches.
func (s *Selector) DetectInitial(preferred, locale string) Code {
	if code, ok := s.Preferred(preferred); ok {
		return code
	}
	if code, ok := s.MatchLocale(locale); ok {
		return code
	}
	return s.langs.Default()
}

// DetectAcceptLanguage behaves like DetectInitial but tries every locale of an
// Accept-Language header in quality order.
func (s *Selector) DetectAcceptLanguage(preferred, header string) Code {
	if code, ok := s.Preferred(preferred); ok {
		return code
	}
	for _, locale := range ParseAcceptLanguage(header) {
		if code, ok := s.MatchLocale(locale); ok {
			return code
		}
	}
	return s.langs.Default()
}

// Preferred reports whether a persisted preference names a supported code.
// Only exact codes are accepted.
func (s *Selector) Preferred(preferred string) (Code, bool) {
	code := Code(strings.TrimSpace(preferred))
	if code == "" || !s.langs.Has(code) {
		return "", false
	}
	return code, true
}

// MatchLocale maps a browser locale such as "pt-BR" or "zh-HK" to a supported code.
func (s *Selector) MatchLocale(locale string) (Code, bool) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "", false
	}

	if code, ok := s.langs.Match(locale); ok {
		return code, true
	}

	primary, _, _ := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-")
	if code, ok := s.langs.Match(primary); ok {
		return code, true
	}

	if chinese, traditional := isChinese(locale); chinese {
		code := ChineseSimplified
		if traditional {
			code = ChineseTraditional
		}
		if s.langs.Has(code) {
			return code, true
		}
	}

	return "", false
}
