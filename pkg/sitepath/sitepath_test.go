package sitepath_test

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/pkg/sitepath"
)

func TestDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want int
	}{
		{"/", 0},
		{"", 0},
		{"/index.html", 0},
		{"/config-builder.html", 0},
		{"/docs/", 1},
		{"/docs/index.html", 1},
		{"/docs/server/install.html", 2},
		{"/docs/server/", 2},
		{"/sysmanage-docs/docs/server/install.html", 3},
		{"//docs///server/install.html", 2},
		{"/docs/server/install.html?lang=es#top", 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sitepath.Depth(tt.path))
		})
	}
}

func TestResolver_RootPrefix(t *testing.T) {
	t.Parallel()

	t.Run("root pages have empty prefix", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New()
		assert.Empty(t, r.RootPrefix("/"))
		assert.Empty(t, r.RootPrefix("/index.html"))
		assert.Empty(t, r.RootPrefix("/config-builder.html"))
	})

	t.Run("docs pages at root base", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New()
		assert.Equal(t, "../", r.RootPrefix("/docs/"))
		assert.Equal(t, "../", r.RootPrefix("/docs/index.html"))
		assert.Equal(t, "../../", r.RootPrefix("/docs/server/install.html"))
		assert.Equal(t, "../../../", r.RootPrefix("/docs/server/linux/ubuntu.html"))
	})

	t.Run("depth three under docs with base depth one", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New(sitepath.WithBase("/sysmanage-docs/"))
		p := "/sysmanage-docs/docs/server/install.html"
		require.Equal(t, 3, sitepath.Depth(p))
		assert.Equal(t, "../../", r.RootPrefix(p))
	})

	t.Run("base path pages outside docs", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New(sitepath.WithBase("sysmanage-docs"))
		assert.Equal(t, "/sysmanage-docs/", r.Base())
		assert.Empty(t, r.RootPrefix("/sysmanage-docs/"))
		assert.Empty(t, r.RootPrefix("/sysmanage-docs/index.html"))
		assert.Equal(t, "../", r.RootPrefix("/sysmanage-docs/blog/post.html"))
	})

	t.Run("custom docs directory", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New(sitepath.WithDocsDir("/manual/"))
		assert.Equal(t, "manual", r.DocsDir())
		assert.True(t, r.InDocs("/manual/agent/"))
		assert.False(t, r.InDocs("/docs/agent/"))
		assert.Equal(t, "../../", r.RootPrefix("/manual/agent/"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()
		r := sitepath.New()
		for range 3 {
			assert.Equal(t, "../../", r.RootPrefix("/docs/api/index.html"))
		}
	})
}

// Resolving a root-relative asset through the prefix must land on the same
// absolute path no matter how deep the page is.
func TestResolver_RootPrefixNormalizesToSameAsset(t *testing.T) {
	t.Parallel()

	bases := []string{"/", "/sysmanage-docs/"}
	pages := []string{
		"docs/",
		"docs/index.html",
		"docs/server/",
		"docs/server/install.html",
		"docs/server/linux/ubuntu.html",
		"docs/a/b/c/d/e.html",
	}

	for _, base := range bases {
		r := sitepath.New(sitepath.WithBase(base))
		want := path.Join(base, "assets/locales/en.json")

		for _, page := range pages {
			p := base + page
			t.Run(p, func(t *testing.T) {
				t.Parallel()
				dir := p
				if p[len(p)-1] != '/' {
					dir = path.Dir(p)
				}
				got := path.Join(dir, r.RootPrefix(p)+"assets/locales/en.json")
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestResolver_Page(t *testing.T) {
	t.Parallel()

	r := sitepath.New()
	page := r.Page("/docs/agent/config.html")
	assert.Equal(t, sitepath.Page{
		Path:   "/docs/agent/config.html",
		Prefix: "../../",
		Depth:  2,
		InDocs: true,
	}, page)
}

func TestResolver_SiteRoot(t *testing.T) {
	t.Parallel()

	r := sitepath.New(sitepath.WithBase("/sysmanage-docs/"))
	assert.Equal(t, "/sysmanage-docs/", r.SiteRoot("/sysmanage-docs/docs/"))
	assert.Equal(t, "/", r.SiteRoot("/docs/"))
	assert.Equal(t, "/", sitepath.New().SiteRoot("/sysmanage-docs/docs/"))
}

func TestResolver_AdjustLink(t *testing.T) {
	t.Parallel()

	r := sitepath.New()
	tests := []struct {
		name string
		href string
		page string
		want string
	}{
		{"external https", "https://github.com/bceverly/sysmanage", "/docs/api/", "https://github.com/bceverly/sysmanage"},
		{"protocol relative", "//cdn.example.com/x.js", "/docs/api/", "//cdn.example.com/x.js"},
		{"mailto", "mailto:team@example.com", "/docs/", "mailto:team@example.com"},
		{"anchor in docs", "#features", "/docs/api/", "../../#features"},
		{"anchor at root", "#features", "/index.html", "#features"},
		{"root relative in docs", "/config-builder.html", "/docs/api/", "../../config-builder.html"},
		{"root relative at root", "/docs/", "/index.html", "docs/"},
		{"home at root", "/", "/index.html", "./"},
		{"home in docs", "/", "/docs/server/install.html", "../../"},
		{"relative unchanged", "install.html", "/docs/server/", "install.html"},
		{"empty", "", "/docs/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.AdjustLink(tt.href, tt.page))
		})
	}

	t.Run("strips configured base", func(t *testing.T) {
		t.Parallel()
		rb := sitepath.New(sitepath.WithBase("/sysmanage-docs/"))
		assert.Equal(t, "../docs/api/", rb.AdjustLink("/sysmanage-docs/docs/api/", "/sysmanage-docs/docs/index.html"))
	})
}

func TestResolver_IsActive(t *testing.T) {
	t.Parallel()

	r := sitepath.New()
	tests := []struct {
		name    string
		pattern string
		page    string
		want    bool
	}{
		{"prefix matches subtree", "/docs/", "/docs/server/install.html", true},
		{"prefix matches index", "/docs/", "/docs/", true},
		{"prefix misses sibling", "/docs/", "/config-builder.html", false},
		{"exact page", "/config-builder.html", "/config-builder.html", true},
		{"exact ignores trailing slash", "/features", "/features/", true},
		{"root only matches root", "/", "/docs/", false},
		{"root matches root", "/", "/", true},
		{"external never active", "https://github.com/bceverly/sysmanage", "/", false},
		{"empty pattern", "", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.IsActive(tt.pattern, tt.page))
		})
	}

	t.Run("under base", func(t *testing.T) {
		t.Parallel()
		rb := sitepath.New(sitepath.WithBase("/sysmanage-docs/"))
		assert.True(t, rb.IsActive("/docs/", "/sysmanage-docs/docs/agent/"))
		assert.False(t, rb.IsActive("/docs/", "/sysmanage-docs/index.html"))
	})
}
