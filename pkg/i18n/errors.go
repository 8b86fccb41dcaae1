package i18n

import "errors"

var (
	ErrEmptyLanguage       = errors.New("i18n: language cannot be empty")
	ErrUnsupportedLanguage = errors.New("i18n: unsupported language")
	ErrDuplicateLanguage   = errors.New("i18n: duplicate language")
	ErrNilFetcher          = errors.New("i18n: bundle fetcher cannot be nil")
	ErrBundleNotFound      = errors.New("i18n: bundle not found")
	ErrFetchFailed         = errors.New("i18n: bundle fetch failed")
	ErrInvalidBundle       = errors.New("i18n: invalid translation bundle")
	ErrLoadFailed          = errors.New("i18n: no bundle could be loaded")
	ErrSuperseded          = errors.New("i18n: language change superseded by a later change")
)
