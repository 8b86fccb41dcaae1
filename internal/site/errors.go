package site

import "errors"

var (
	ErrPageNotFound = errors.New("site: page not found")
	ErrNilStore     = errors.New("site: translation store cannot be nil")
	ErrNilFS        = errors.New("site: content filesystem cannot be nil")
	ErrRender       = errors.New("site: failed to render page")
)
