package sitepath

import (
	"path"
	"strings"
)

// Defaults used when no option overrides them.
const (
	DefaultBase    = "/"
	DefaultDocsDir = "docs"
)

// Resolver computes relative prefixes from a page path to the site root.
// It is immutable after creation and safe for concurrent use.
type Resolver struct {
	base      string
	docsDir   string
	baseDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBase sets the absolute path the site is served under,
// e.g. "/sysmanage-docs/" for a project page. Defaults to "/".
func WithBase(base string) Option {
	return func(r *Resolver) {
		if base = normalizeBase(base); base != "" {
			r.base = base
		}
	}
}

// WithDocsDir sets the name of the documentation subtree directory.
// Defaults to "docs".
func WithDocsDir(name string) Option {
	return func(r *Resolver) {
		if name = strings.Trim(name, "/ "); name != "" {
			r.docsDir = name
		}
	}
}

// New creates a Resolver with the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		base:    DefaultBase,
		docsDir: DefaultDocsDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.baseDepth = Depth(r.base)
	return r
}

// Base returns the configured site base path (always slash-terminated).
func (r *Resolver) Base() string {
	return r.base
}

// DocsDir returns the documentation subtree directory name.
func (r *Resolver) DocsDir() string {
	return r.docsDir
}

// Page describes where a page sits relative to the site root.
type Page struct {
	Path   string
	Prefix string
	Depth  int
	InDocs bool
}

// Page derives the page context for the given request path.
func (r *Resolver) Page(p string) Page {
	return Page{
		Path:   p,
		Depth:  Depth(p),
		InDocs: r.InDocs(p),
		Prefix: r.RootPrefix(p),
	}
}

// RootPrefix returns the "../" sequence needed to reach the site root from p.
// The root page ("/" or "/index.html") yields an empty prefix.
//
// Pages under the docs subtree subtract the depth at which the docs directory
// sits; other pages subtract the configured base depth when they live under it.
func (r *Resolver) RootPrefix(p string) string {
	levels := Depth(p) - r.offset(p)
	if levels <= 0 {
		return ""
	}
	return strings.Repeat("../", levels)
}

// InDocs reports whether p lies inside the docs subtree.
func (r *Resolver) InDocs(p string) bool {
	return r.docsIndex(p) >= 0
}

// SiteRoot returns the absolute site root for p: the configured base when p is
// served under it, "/" otherwise.
func (r *Resolver) SiteRoot(p string) string {
	if r.base != DefaultBase && strings.HasPrefix(clean(p), r.base) {
		return r.base
	}
	return DefaultBase
}

// AdjustLink rewrites a site-absolute link so it resolves from p.
//
//   - external links (scheme or protocol-relative) are returned unchanged;
//   - anchors point back to the home page when p is inside the docs subtree;
//   - root-relative links are made relative with the root prefix;
//   - any other relative link is returned unchanged.
func (r *Resolver) AdjustLink(href, p string) string {
	switch {
	case href == "":
		return href
	case isExternal(href):
		return href
	case strings.HasPrefix(href, "#"):
		if r.InDocs(p) {
			return r.RootPrefix(p) + href
		}
		return href
	case strings.HasPrefix(href, "/"):
		rest := strings.TrimPrefix(href, r.base)
		if rest == href {
			rest = strings.TrimPrefix(href, "/")
		}
		link := r.RootPrefix(p) + rest
		if link == "" {
			return "./"
		}
		return link
	default:
		return href
	}
}

// IsActive reports whether a navigation link matches p. A pattern ending in
// "/" other than the root matches every page under it; any other pattern must
// equal p, ignoring a trailing slash.
func (r *Resolver) IsActive(pattern, p string) bool {
	if pattern == "" || isExternal(pattern) {
		return false
	}
	pattern = clean(strings.TrimPrefix(pattern, strings.TrimSuffix(r.base, "/")))
	current := clean(strings.TrimPrefix(clean(p), strings.TrimSuffix(r.base, "/")))

	if pattern != "/" && strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(current, pattern)
	}
	return strings.TrimSuffix(current, "/") == strings.TrimSuffix(pattern, "/")
}

func (r *Resolver) offset(p string) int {
	if idx := r.docsIndex(p); idx >= 0 {
		return idx
	}
	if r.base != DefaultBase && strings.HasPrefix(clean(p), r.base) {
		return r.baseDepth
	}
	return 0
}

// docsIndex returns the position of the docs directory among the directory
// segments of p, or -1 when p is not inside it.
func (r *Resolver) docsIndex(p string) int {
	for i, seg := range dirSegments(p) {
		if seg == r.docsDir {
			return i
		}
	}
	return -1
}

// Depth returns the number of directory levels between p and "/".
// A trailing slash marks p as a directory index; otherwise the last segment
// is treated as a file name and does not count.
func Depth(p string) int {
	return len(dirSegments(p))
}

func dirSegments(p string) []string {
	p = clean(p)
	if p == "/" {
		return nil
	}
	dir := p
	if !strings.HasSuffix(p, "/") {
		dir = path.Dir(p)
	}
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return nil
	}
	return strings.Split(dir, "/")
}

// clean normalizes p to an absolute path, keeping a trailing slash.
func clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	trailing := strings.HasSuffix(p, "/")
	p = path.Clean("/" + p)
	if trailing && p != "/" {
		p += "/"
	}
	return p
}

func normalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	base = clean(base)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

func isExternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	scheme, _, ok := strings.Cut(href, ":")
	if !ok || scheme == "" || strings.ContainsAny(scheme, "/?#") {
		return false
	}
	return true
}
