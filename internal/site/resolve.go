package site

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

type kind uint8

const (
	kindAsset kind = iota
	kindHTML
	kindMarkdown
)

// target is a request path resolved to a file in the content filesystem.
type target struct {
	name     string
	kind     kind
	redirect string // set when the request must be retried with a trailing slash
}

func kindOf(name string) kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		return kindHTML
	case ".md", ".markdown":
		return kindMarkdown
	default:
		return kindAsset
	}
}

// find maps a URL path to a file. Directory requests resolve to index.html
// then index.md; extensionless paths try .html and .md before falling back to
// a directory index, which asks for a redirect to the slash-terminated path.
func (s *Site) find(urlPath string) (target, error) {
	rel, ok := s.relative(urlPath)
	if !ok {
		return target{}, ErrPageNotFound
	}

	if rel == "" || strings.HasSuffix(rel, "/") {
		return s.first(rel+"index.html", rel+"index.md")
	}

	candidates := []string{rel}
	if path.Ext(rel) == "" {
		candidates = append(candidates, rel+".html", rel+".md")
	}
	if t, err := s.first(candidates...); err == nil {
		return t, nil
	}

	t, err := s.first(rel+"/index.html", rel+"/index.md")
	if err != nil {
		return target{}, err
	}
	t.redirect = urlPath + "/"
	return t, nil
}

// relative strips the site base from urlPath and rejects paths escaping it.
func (s *Site) relative(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, s.resolver.Base()) && urlPath+"/" != s.resolver.Base() {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, s.prefix())
	trailing := strings.HasSuffix(rel, "/")

	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel != "" && !fs.ValidPath(rel) {
		return "", false
	}
	if trailing && rel != "" {
		rel += "/"
	}
	return rel, true
}

func (s *Site) first(names ...string) (target, error) {
	for _, name := range names {
		info, err := fs.Stat(s.fsys, name)
		switch {
		case err == nil && !info.IsDir():
			return target{name: name, kind: kindOf(name)}, nil
		case err == nil, errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return target{}, err
		}
	}
	return target{}, ErrPageNotFound
}
