package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/sitepath"
)

// DefaultActiveLink is used when data-auto-header carries no value.
const DefaultActiveLink = "documentation"

// Selectors of the injected blocks. They identify chrome to replace on
// re-injection.
const (
	HeaderSelector   = ".site-header"
	FooterSelector   = ".site-footer"
	MenuSelector     = ".site-header .nav-menu"
	SwitcherSelector = ".language-switcher"
)

var (
	ErrNoBody   = errors.New("components: document has no body")
	ErrRender   = errors.New("components: failed to render markup")
	ErrNoHeader = errors.New("components: document has no site header")
)

// Injector renders chrome for a page. It holds only configuration and is safe
// for concurrent use.
type Injector struct {
	resolver    *sitepath.Resolver
	langs       *i18n.Languages
	brand       Brand
	headerLinks []Link
	navLinks    []Link
	sections    []FooterSection
	copyright   Link
}

// Option configures an Injector.
type Option func(*Injector)

// WithBrand sets the logo block.
func WithBrand(b Brand) Option {
	return func(in *Injector) {
		in.brand = b
	}
}

// WithHeaderLinks sets the header menu.
func WithHeaderLinks(links []Link) Option {
	return func(in *Injector) {
		in.headerLinks = links
	}
}

// WithNavLinks sets the navbar menu.
func WithNavLinks(links []Link) Option {
	return func(in *Injector) {
		in.navLinks = links
	}
}

// WithFooterSections sets the footer columns.
func WithFooterSections(sections []FooterSection) Option {
	return func(in *Injector) {
		in.sections = sections
	}
}

// WithCopyright sets the footer bottom line.
func WithCopyright(key, text string) Option {
	return func(in *Injector) {
		in.copyright = Link{Key: key, Text: text}
	}
}

// WithLanguages sets the languages listed by the switcher.
func WithLanguages(langs *i18n.Languages) Option {
	return func(in *Injector) {
		if langs != nil {
			in.langs = langs
		}
	}
}

// New creates an Injector. A nil resolver serves the site from "/".
func New(resolver *sitepath.Resolver, opts ...Option) *Injector {
	if resolver == nil {
		resolver = sitepath.New()
	}
	in := &Injector{
		resolver:    resolver,
		langs:       i18n.DefaultLanguages(),
		brand:       DefaultBrand,
		headerLinks: DefaultHeaderLinks,
		navLinks:    DefaultNavLinks,
		sections:    DefaultFooterSections,
		copyright:   DefaultCopyright,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

type linkView struct {
	Href     string
	Class    string
	Key      string
	Text     string
	External bool
	HTML     bool
}

type headerView struct {
	Brand Brand
	Links []linkView
}

type sectionView struct {
	Title    string
	TitleKey string
	Text     string
	TextKey  string
	Links    []linkView
	Inline   bool
}

type footerView struct {
	Sections  []sectionView
	Copyright Link
}

type optionView struct {
	Href   string
	Name   string
	Code   string
	Tag    string
	Active bool
}

type switcherView struct {
	Active  i18n.Language
	Options []optionView
}

// RenderHeader returns the documentation header for the page at pagePath with
// the link whose ID is activeLink marked active.
func (in *Injector) RenderHeader(pagePath, activeLink string) (string, error) {
	links := make([]linkView, 0, len(in.headerLinks))
	for _, l := range in.headerLinks {
		class := "nav-link"
		if !l.External && l.ID != "" && l.ID == activeLink {
			class += " active"
		}
		links = append(links, in.link(l, pagePath, class, true))
	}
	return render("header", headerView{Brand: in.brandFor(pagePath), Links: links})
}

// RenderNavbar returns the landing page navbar for pagePath. Active state
// comes from the page path rather than an explicit link ID.
func (in *Injector) RenderNavbar(pagePath string) (string, error) {
	links := make([]linkView, 0, len(in.navLinks))
	for _, l := range in.navLinks {
		class := "nav-link"
		pattern := l.ActivePrefix
		if pattern == "" {
			pattern = l.Href
		}
		if !l.External && !strings.Contains(pattern, "#") && in.resolver.IsActive(pattern, pagePath) {
			class += " active"
		}
		links = append(links, in.link(l, pagePath, class, false))
	}
	return render("header", headerView{Brand: in.brandFor(pagePath), Links: links})
}

// RenderFooter returns the footer for the page at pagePath.
func (in *Injector) RenderFooter(pagePath string) (string, error) {
	sections := make([]sectionView, 0, len(in.sections))
	for _, s := range in.sections {
		sv := sectionView{
			Title:    s.Title,
			TitleKey: s.TitleKey,
			Text:     s.Text,
			TextKey:  s.TextKey,
			Inline:   s.Inline,
		}
		for _, l := range s.Links {
			sv.Links = append(sv.Links, in.link(l, pagePath, "", true))
		}
		sections = append(sections, sv)
	}
	return render("footer", footerView{Sections: sections, Copyright: in.copyright})
}

// RenderLanguageSwitcher returns the language dropdown with active marked.
// switchURL builds the link that activates a language.
func (in *Injector) RenderLanguageSwitcher(active i18n.Code, switchURL func(i18n.Code) string) (string, error) {
	view := switcherView{Active: in.langs.MustGet(active)}
	for _, lang := range in.langs.All() {
		href := "#"
		if switchURL != nil {
			href = switchURL(lang.Code)
		}
		view.Options = append(view.Options, optionView{
			Href:   href,
			Name:   lang.Name,
			Code:   string(lang.Code),
			Tag:    dom.LangTag(lang.Code),
			Active: lang.Code == active,
		})
	}
	return render("switcher", view)
}

// InjectHeader inserts the header as the first element of <body>, replacing
// an existing header.
func (in *Injector) InjectHeader(doc *dom.Document, pagePath, activeLink string) error {
	markup, err := in.RenderHeader(pagePath, activeLink)
	if err != nil {
		return err
	}
	return prepend(doc, HeaderSelector, markup)
}

// InjectNavbar inserts the navbar header, replacing an existing header.
func (in *Injector) InjectNavbar(doc *dom.Document, pagePath string) error {
	markup, err := in.RenderNavbar(pagePath)
	if err != nil {
		return err
	}
	return prepend(doc, HeaderSelector, markup)
}

// InjectFooter appends the footer to <body>, replacing an existing footer.
func (in *Injector) InjectFooter(doc *dom.Document, pagePath string) error {
	markup, err := in.RenderFooter(pagePath)
	if err != nil {
		return err
	}

	body := doc.Body()
	if body.Length() == 0 {
		return ErrNoBody
	}
	if existing := doc.Find(FooterSelector); existing.Length() > 0 {
		replace(existing, markup)
		return nil
	}
	body.AppendHtml(markup)
	return nil
}

// InjectLanguageSwitcher adds the switcher to every header menu, replacing
// the previous one. It returns ErrNoHeader when the page has no header menu.
func (in *Injector) InjectLanguageSwitcher(doc *dom.Document, active i18n.Code, switchURL func(i18n.Code) string) error {
	menus := doc.Find(MenuSelector)
	if menus.Length() == 0 {
		return ErrNoHeader
	}

	markup, err := in.RenderLanguageSwitcher(active, switchURL)
	if err != nil {
		return err
	}

	menus.Each(func(_ int, menu *goquery.Selection) {
		menu.Find(SwitcherSelector).Remove()
		menu.AppendHtml(markup)
	})
	return nil
}

// AutoInject injects the header and footer requested by the body markers:
// data-auto-header (its value names the active link) and data-auto-footer.
// It reports whether anything was injected.
func (in *Injector) AutoInject(doc *dom.Document, pagePath string) (bool, error) {
	body := doc.Body()
	if body.Length() == 0 {
		return false, nil
	}

	var injected bool
	if active, ok := body.Attr(dom.AttrAutoHeader); ok {
		active = strings.TrimSpace(active)
		if active == "" {
			active = DefaultActiveLink
		}
		if err := in.InjectHeader(doc, pagePath, active); err != nil {
			return injected, err
		}
		injected = true
	}

	if _, ok := body.Attr(dom.AttrAutoFooter); ok {
		if err := in.InjectFooter(doc, pagePath); err != nil {
			return injected, err
		}
		injected = true
	}

	return injected, nil
}

func (in *Injector) link(l Link, pagePath, class string, html bool) linkView {
	href := l.Href
	if !l.External {
		href = in.resolver.AdjustLink(href, pagePath)
	}
	return linkView{
		Href:     href,
		Class:    class,
		Key:      l.Key,
		Text:     l.Text,
		External: l.External,
		HTML:     html,
	}
}

func (in *Injector) brandFor(pagePath string) Brand {
	return Brand{
		Logo: in.resolver.AdjustLink(in.brand.Logo, pagePath),
		Alt:  in.brand.Alt,
		Home: in.resolver.AdjustLink(in.brand.Home, pagePath),
	}
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return b.String(), nil
}

func prepend(doc *dom.Document, selector, markup string) error {
	body := doc.Body()
	if body.Length() == 0 {
		return ErrNoBody
	}
	if existing := doc.Find(selector); existing.Length() > 0 {
		replace(existing, markup)
		return nil
	}
	body.PrependHtml(markup)
	return nil
}

// replace swaps the first match for markup and drops any duplicates.
func replace(existing *goquery.Selection, markup string) {
	existing.Slice(1, existing.Length()).Remove()
	existing.First().ReplaceWithHtml(markup)
}
