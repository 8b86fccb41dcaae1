package i18n

// Translator provides a simplified translation interface with a fixed language.
// It wraps a Store and eliminates the need to specify the language for each lookup.
type Translator struct {
	store *Store
	lang  Language
}

// NewTranslator creates a Translator for code. Unsupported codes fall back to
// the store's default language for direction and naming, while lookups still
// use code first.
func NewTranslator(store *Store, code Code) *Translator {
	if store == nil {
		panic("i18n: store is not provided")
	}
	lang, ok := store.Languages().Get(code)
	if !ok {
		lang = store.Languages().MustGet(store.DefaultLanguage())
		lang.Code = code
	}
	return &Translator{store: store, lang: lang}
}

// T translates a key using the translator's language.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.store.Lookup(t.lang.Code, key, placeholders...)
}

// Translate is an alias of T for dynamic content helpers.
func (t *Translator) Translate(key string, placeholders ...M) string {
	return t.T(key, placeholders...)
}

// Language returns the translator's language.
func (t *Translator) Language() Language {
	return t.lang
}

// Code returns the translator's language code.
func (t *Translator) Code() Code {
	return t.lang.Code
}
