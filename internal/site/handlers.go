package site

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sysmanage/docsite/internal"
	"github.com/sysmanage/docsite/middlewares"
	"github.com/sysmanage/docsite/pkg/cache"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
)

func (s *Site) serve(w http.ResponseWriter, r *http.Request) error {
	t, err := s.find(r.URL.Path)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return internal.ErrNotFound(err)
		}
		return err
	}
	if t.redirect != "" {
		loc := t.redirect
		if r.URL.RawQuery != "" {
			loc += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, loc, http.StatusMovedPermanently)
		return nil
	}

	if t.kind == kindAsset {
		http.ServeFileFS(w, r, s.fsys, t.name)
		return nil
	}
	return s.servePage(w, r, t)
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request, t target) error {
	ctx := r.Context()
	tr := s.translator(r)
	render := func(ctx context.Context) (cache.Page, error) {
		page, err := s.render(ctx, tr, r.URL.Path, t)
		if err != nil {
			return page, err
		}
		// Fallback text must not be cached under the requested language.
		page.NoStore = !s.store.Loaded(tr.Language().Code)
		return page, nil
	}

	var (
		page cache.Page
		hit  bool
		err  error
	)
	if s.pages != nil {
		page, hit, err = s.pages.Get(ctx, cache.Key(tr.Language().Code, r.URL.Path), render)
	} else {
		page, err = render(ctx)
	}
	if err != nil {
		return err
	}

	h := w.Header()
	h.Set("Content-Type", page.ContentType)
	h.Set("ETag", page.ETag)
	h.Set("Cache-Control", "no-cache")
	if s.pages != nil {
		status := "MISS"
		if hit {
			status = "HIT"
		}
		h.Set("X-Cache", status)
	}

	if match := r.Header.Get("If-None-Match"); match != "" && etagMatch(match, page.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	h.Set("Content-Length", strconv.Itoa(len(page.Body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	if _, err := w.Write(page.Body); err != nil {
		s.logger.DebugContext(ctx, "failed to write page", slog.Any("error", err))
	}
	return nil
}

// switchLanguage activates the language named in the path and sends the
// visitor back to the page given by ?return=, or to the site root.
func (s *Site) switchLanguage(w http.ResponseWriter, r *http.Request) error {
	code, ok := s.store.Languages().Match(chi.URLParam(r, "code"))
	if !ok {
		return internal.ErrNotFound(i18n.ErrUnsupportedLanguage)
	}

	if sess := middlewares.GetSession(r.Context()); sess != nil {
		if err := sess.Change(r.Context(), code); err != nil && !errors.Is(err, i18n.ErrSuperseded) {
			return err
		}
	}

	http.Redirect(w, r, s.returnTo(r), http.StatusSeeOther)
	return nil
}

// returnTo accepts only local absolute paths under the site base.
func (s *Site) returnTo(r *http.Request) string {
	ret := r.URL.Query().Get(ReturnParam)
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.Contains(ret, "\\") {
		return s.resolver.Base()
	}
	if _, ok := s.relative(ret); !ok {
		return s.resolver.Base()
	}
	return ret
}

// translator returns the request's session, or the default language when
// the Language middleware is not installed.
func (s *Site) translator(r *http.Request) dom.Translator {
	if sess := middlewares.GetSession(r.Context()); sess != nil {
		return sess
	}
	return s.store.Translator(s.store.DefaultLanguage())
}

func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
