package components_test

import (
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/pkg/components"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/sitepath"
)

func fragment(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	return doc
}

func hrefByKey(doc *dom.Document, key string) string {
	return doc.Find(`a[data-i18n="` + key + `"]`).AttrOr("href", "")
}

func TestInjector_RenderHeader(t *testing.T) {
	t.Parallel()

	in := components.New(sitepath.New())

	t.Run("links are relative to a docs page", func(t *testing.T) {
		t.Parallel()
		markup, err := in.RenderHeader("/docs/server/install.html", "documentation")
		require.NoError(t, err)
		doc := fragment(t, markup)

		assert.Equal(t, "../../docs/", hrefByKey(doc, "nav.documentation"))
		assert.Equal(t, "../../config-builder.html", hrefByKey(doc, "nav.config_builder"))
		assert.Equal(t, "https://github.com/bceverly/sysmanage", hrefByKey(doc, "nav.github_server"))
		assert.Equal(t, "../../", doc.Find(".nav-brand a").AttrOr("href", ""))
		assert.Equal(t, "../../assets/images/sysmanage-logo.svg", doc.Find("img.logo").AttrOr("src", ""))

		active := doc.Find(".nav-link.active")
		require.Equal(t, 1, active.Length())
		assert.Equal(t, "nav.documentation", active.AttrOr("data-i18n", ""))
		assert.Equal(t, "_blank", doc.Find(`a[data-i18n="nav.github_agent"]`).AttrOr("target", ""))
		assert.Equal(t, 4, doc.Find(".nav-menu a[data-i18n-html]").Length())
	})

	t.Run("links at the site root", func(t *testing.T) {
		t.Parallel()
		markup, err := in.RenderHeader("/index.html", "config-builder")
		require.NoError(t, err)
		doc := fragment(t, markup)

		assert.Equal(t, "docs/", hrefByKey(doc, "nav.documentation"))
		assert.Equal(t, "./", doc.Find(".nav-brand a").AttrOr("href", ""))
		assert.Equal(t, "nav.config_builder", doc.Find(".nav-link.active").AttrOr("data-i18n", ""))
	})

	t.Run("project base path", func(t *testing.T) {
		t.Parallel()
		based := components.New(sitepath.New(sitepath.WithBase("/sysmanage-docs/")))
		markup, err := based.RenderHeader("/sysmanage-docs/docs/agent/", "documentation")
		require.NoError(t, err)
		doc := fragment(t, markup)

		assert.Equal(t, "../../docs/", hrefByKey(doc, "nav.documentation"))
		assert.Equal(t, "../../", doc.Find(".nav-brand a").AttrOr("href", ""))
	})
}

func TestInjector_RenderNavbar(t *testing.T) {
	t.Parallel()

	in := components.New(nil)

	markup, err := in.RenderNavbar("/docs/api/")
	require.NoError(t, err)
	doc := fragment(t, markup)

	assert.Equal(t, "../../#features", hrefByKey(doc, "nav.features"))
	assert.Equal(t, "../../#getting-started", hrefByKey(doc, "nav.getting_started"))
	assert.Equal(t, "nav.documentation", doc.Find(".nav-link.active").AttrOr("data-i18n", ""))
	assert.Equal(t, 0, doc.Find(".nav-menu a[data-i18n-html]").Length())

	markup, err = in.RenderNavbar("/index.html")
	require.NoError(t, err)
	doc = fragment(t, markup)
	assert.Equal(t, "#features", hrefByKey(doc, "nav.features"))
	assert.Equal(t, 0, doc.Find(".nav-link.active").Length())

	markup, err = in.RenderNavbar("/config-builder.html")
	require.NoError(t, err)
	doc = fragment(t, markup)
	assert.Equal(t, "nav.config_builder", doc.Find(".nav-link.active").AttrOr("data-i18n", ""))
}

func TestInjector_RenderFooter(t *testing.T) {
	t.Parallel()

	in := components.New(nil)
	markup, err := in.RenderFooter("/docs/index.html")
	require.NoError(t, err)
	doc := fragment(t, markup)

	assert.Equal(t, 4, doc.Find(".footer-section").Length())
	assert.Equal(t, "../docs/server/", hrefByKey(doc, "footer.server_docs"))
	assert.Equal(t, "../docs/security/", hrefByKey(doc, "footer.security"))
	assert.Equal(t, "https://github.com/bceverly/sysmanage/issues", hrefByKey(doc, "footer.issue_tracker"))
	assert.Equal(t, 1, doc.Find(`.footer-section p a[data-i18n="footer.view_license"]`).Length())
	assert.Equal(t, "SysManage", doc.Find(".footer-section h3").First().Text())

	copyright := doc.Find(".footer-bottom p")
	assert.Equal(t, "footer.copyright", copyright.AttrOr("data-i18n", ""))
	_, isHTML := copyright.Attr("data-i18n-html")
	assert.False(t, isHTML)
}

func TestInjector_Inject(t *testing.T) {
	t.Parallel()

	const page = `<html><body><main id="content"><h1>Install</h1></main></body></html>`
	in := components.New(nil)

	t.Run("header is prepended and replaced on re-injection", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, page)

		require.NoError(t, in.InjectHeader(doc, "/docs/server/install.html", "documentation"))
		require.NoError(t, in.InjectHeader(doc, "/docs/server/install.html", "config-builder"))

		headers := doc.Find(components.HeaderSelector)
		require.Equal(t, 1, headers.Length())
		assert.True(t, doc.Body().Children().First().Is(components.HeaderSelector))
		assert.Equal(t, "nav.config_builder", doc.Find(".nav-link.active").AttrOr("data-i18n", ""))
	})

	t.Run("navbar replaces the header", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, page)

		require.NoError(t, in.InjectHeader(doc, "/docs/", "documentation"))
		require.NoError(t, in.InjectNavbar(doc, "/docs/"))

		assert.Equal(t, 1, doc.Find(components.HeaderSelector).Length())
		assert.Equal(t, 1, doc.Find(`a[data-i18n="nav.features"]`).Length())
	})

	t.Run("footer is appended and replaced on re-injection", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, page)

		require.NoError(t, in.InjectFooter(doc, "/docs/"))
		require.NoError(t, in.InjectFooter(doc, "/docs/"))

		require.Equal(t, 1, doc.Find(components.FooterSelector).Length())
		assert.True(t, doc.Body().Children().Last().Is(components.FooterSelector))
	})

	t.Run("duplicate headers collapse to one", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, `<html><body><header class="site-header">a</header><header class="site-header">b</header></body></html>`)

		require.NoError(t, in.InjectHeader(doc, "/", "documentation"))
		assert.Equal(t, 1, doc.Find(components.HeaderSelector).Length())
	})
}

func TestInjector_AutoInject(t *testing.T) {
	t.Parallel()

	in := components.New(nil)

	tests := []struct {
		name       string
		body       string
		injected   bool
		headers    int
		footers    int
		activeLink string
	}{
		{"both markers", `<body data-auto-header="config-builder" data-auto-footer>`, true, 1, 1, "nav.config_builder"},
		{"empty header marker defaults to documentation", `<body data-auto-header>`, true, 1, 0, "nav.documentation"},
		{"footer only", `<body data-auto-footer>`, true, 0, 1, ""},
		{"no markers", `<body>`, false, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := fragment(t, `<html>`+tt.body+`<main></main></body></html>`)

			injected, err := in.AutoInject(doc, "/docs/")
			require.NoError(t, err)
			assert.Equal(t, tt.injected, injected)
			assert.Equal(t, tt.headers, doc.Find(components.HeaderSelector).Length())
			assert.Equal(t, tt.footers, doc.Find(components.FooterSelector).Length())
			if tt.activeLink != "" {
				assert.Equal(t, tt.activeLink, doc.Find(".nav-link.active").AttrOr("data-i18n", ""))
			}
		})
	}
}

func TestInjector_LanguageSwitcher(t *testing.T) {
	t.Parallel()

	in := components.New(nil)
	switchURL := func(code i18n.Code) string { return "/lang/" + string(code) + "?return=/docs/" }

	t.Run("requires a header", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, `<html><body></body></html>`)
		require.ErrorIs(t, in.InjectLanguageSwitcher(doc, i18n.English, switchURL), components.ErrNoHeader)
	})

	t.Run("renders every language and replaces the old switcher", func(t *testing.T) {
		t.Parallel()
		doc := fragment(t, `<html><body></body></html>`)
		require.NoError(t, in.InjectHeader(doc, "/docs/", "documentation"))

		require.NoError(t, in.InjectLanguageSwitcher(doc, i18n.English, switchURL))
		require.NoError(t, in.InjectLanguageSwitcher(doc, i18n.ChineseTraditional, switchURL))

		switchers := doc.Find(components.SwitcherSelector)
		require.Equal(t, 1, switchers.Length())
		assert.Equal(t, "繁體中文", switchers.Find(".language-button span").Last().Text())

		options := switchers.Find(".language-option")
		assert.Equal(t, 14, options.Length())

		active := switchers.Find(".language-option.active")
		require.Equal(t, 1, active.Length())
		assert.Equal(t, "zh_TW", active.Find(".language-code").Text())
		assert.Equal(t, "zh-TW", active.AttrOr("hreflang", ""))
		assert.Equal(t, "/lang/zh_TW?return=/docs/", active.AttrOr("href", ""))
	})

	t.Run("custom language set without links", func(t *testing.T) {
		t.Parallel()
		langs, err := i18n.NewLanguages(i18n.English,
			i18n.Language{Code: i18n.English, Name: "English"},
			i18n.Language{Code: i18n.Arabic, Name: "العربية", RTL: true},
		)
		require.NoError(t, err)

		markup, err := components.New(nil, components.WithLanguages(langs)).RenderLanguageSwitcher(i18n.Arabic, nil)
		require.NoError(t, err)
		doc := fragment(t, markup)

		var codes []string
		doc.Find(".language-option").Each(func(_ int, s *goquery.Selection) {
			codes = append(codes, s.Find(".language-code").Text())
			assert.Equal(t, "#", s.AttrOr("href", ""))
		})
		assert.Equal(t, []string{"en", "ar"}, codes)
	})
}

func TestInjectedChromeIsTranslated(t *testing.T) {
	t.Parallel()

	store, err := i18n.NewStore(i18n.NewFSFetcher(fstest.MapFS{}),
		i18n.WithBundles(i18n.Spanish, map[string]any{
			"nav":    map[string]any{"documentation": "Documentación"},
			"footer": map[string]any{"copyright": "© 2024 SysManage. Todos los derechos reservados."},
		}),
	)
	require.NoError(t, err)

	doc := fragment(t, `<html><body data-auto-header data-auto-footer><main></main></body></html>`)
	in := components.New(nil,
		components.WithHeaderLinks(components.DefaultHeaderLinks[:1]),
		components.WithCopyright("footer.copyright", "© SysManage"),
	)
	_, err = in.AutoInject(doc, "/docs/")
	require.NoError(t, err)

	dom.NewApplier().Apply(doc, store.Translator(i18n.Spanish), nil)

	assert.Equal(t, "Documentación", doc.Find(".nav-link").Text())
	assert.Equal(t, "© 2024 SysManage. Todos los derechos reservados.", doc.Find(".footer-bottom p").Text())
	assert.Equal(t, "footer.agent_docs", doc.Find(`a[href="../docs/agent/"]`).Text())
}
