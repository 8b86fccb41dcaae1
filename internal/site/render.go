package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sysmanage/docsite/pkg/cache"
	"github.com/sysmanage/docsite/pkg/components"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
)

// HTMLContentType is the content type of rendered pages.
const HTMLContentType = "text/html; charset=utf-8"

// Render produces the page at pagePath in the language of tr: chrome is
// injected first, then every marker is translated and root-relative links are
// rewritten for pagePath.
func (s *Site) Render(ctx context.Context, tr dom.Translator, pagePath string) (cache.Page, error) {
	t, err := s.find(pagePath)
	if err != nil {
		return cache.Page{}, err
	}
	if t.kind == kindAsset {
		return cache.Page{}, fmt.Errorf("%w: %s is not a page", ErrPageNotFound, t.name)
	}
	return s.render(ctx, tr, pagePath, t)
}

func (s *Site) render(ctx context.Context, tr dom.Translator, pagePath string, t target) (cache.Page, error) {
	src, err := fs.ReadFile(s.fsys, t.name)
	if err != nil {
		return cache.Page{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if t.kind == kindMarkdown {
		if src, err = s.markdown.Render(src); err != nil {
			return cache.Page{}, fmt.Errorf("%w: %s: %w", ErrRender, t.name, err)
		}
	}

	doc, err := dom.Parse(bytes.NewReader(src))
	if err != nil {
		return cache.Page{}, fmt.Errorf("%w: %s: %w", ErrRender, t.name, err)
	}

	if _, err := s.injector.AutoInject(doc, pagePath); err != nil {
		return cache.Page{}, fmt.Errorf("%w: %s: %w", ErrRender, t.name, err)
	}
	active := tr.Language().Code
	err = s.injector.InjectLanguageSwitcher(doc, active, func(code i18n.Code) string {
		return s.SwitchURL(pagePath, code)
	})
	if err != nil && !errors.Is(err, components.ErrNoHeader) {
		return cache.Page{}, fmt.Errorf("%w: %s: %w", ErrRender, t.name, err)
	}

	s.applier.Apply(doc, tr, func(href string) string {
		return s.resolver.AdjustLink(href, pagePath)
	})

	if err := ctx.Err(); err != nil {
		return cache.Page{}, err
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return cache.Page{}, fmt.Errorf("%w: %s: %w", ErrRender, t.name, err)
	}
	return cache.NewPage(buf.Bytes(), HTMLContentType), nil
}
