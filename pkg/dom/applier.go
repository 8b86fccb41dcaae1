package dom

import (
	"strings"

	"github.com/sysmanage/docsite/pkg/i18n"
)

// Translator resolves keys in one language.
type Translator interface {
	T(key string, params ...i18n.M) string
	Language() i18n.Language
}

// Linker rewrites a site-root-relative link for the current page.
// sitepath.Resolver.AdjustLink bound to a page path is the usual Linker.
type Linker func(href string) string

// Applier writes translations into scanned documents.
// It holds no per-document state and is safe for concurrent use.
type Applier struct {
	htmlFilter func(string) string
}

// Option configures an Applier.
type Option func(*Applier)

// WithHTMLFilter sets a filter run over HTML-bearing translations before they
// are inserted, e.g. a bluemonday policy.
func WithHTMLFilter(fn func(string) string) Option {
	return func(a *Applier) {
		a.htmlFilter = fn
	}
}

// NewApplier creates an Applier.
func NewApplier(opts ...Option) *Applier {
	a := &Applier{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply scans doc and applies every descriptor. link may be nil, in which
// case path markers are left untouched.
func (a *Applier) Apply(doc *Document, tr Translator, link Linker) []Descriptor {
	descs := Scan(doc)
	a.ApplyDescriptors(doc, descs, tr, link)
	return descs
}

// ApplyDescriptors applies descriptors from an earlier Scan of doc, which lets
// a language switch re-render without scanning again. Descriptors whose element
// was removed from the document are skipped.
func (a *Applier) ApplyDescriptors(doc *Document, descs []Descriptor, tr Translator, link Linker) {
	SetLanguage(doc, tr.Language())

	for _, d := range descs {
		if d.Kind == KindTitle {
			doc.SetTitle(tr.T(d.Key))
			continue
		}

		s := doc.selection(d.Node)
		if s.Length() == 0 {
			continue
		}

		switch d.Kind {
		case KindText:
			s.SetText(tr.T(d.Key))
		case KindHTML:
			v := tr.T(d.Key)
			if a.htmlFilter != nil {
				v = a.htmlFilter(v)
			}
			s.SetHtml(v)
		case KindAttr, KindPlaceholder:
			s.SetAttr(d.Attr, tr.T(d.Key))
		case KindPath:
			if link == nil {
				continue
			}
			s.SetAttr(d.Attr, link(d.Value))
		}
	}
}

// SetLanguage writes dir and lang on the <html> element.
func SetLanguage(doc *Document, lang i18n.Language) {
	n := doc.Root()
	if n == nil {
		return
	}
	root := doc.selection(n)
	root.SetAttr("dir", lang.Dir())
	root.SetAttr("lang", LangTag(lang.Code))
}

// LangTag converts a language code to the BCP 47 form used by the lang
// attribute ("zh_TW" -> "zh-TW").
func LangTag(code i18n.Code) string {
	return strings.ReplaceAll(string(code), "_", "-")
}
