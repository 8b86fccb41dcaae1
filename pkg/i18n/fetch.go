package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sysmanage/docsite/pkg/sitepath"
)

// maxBundleSize caps how much of a bundle response is read.
const maxBundleSize = 8 << 20

// Fetcher retrieves the raw bytes of a bundle by its site-relative name,
// e.g. "assets/locales/es.json".
//
// Implementations return an error wrapping ErrBundleNotFound when the bundle
// does not exist and ErrFetchFailed for any other failure.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name string) ([]byte, error)

// Fetch calls f(ctx, name).
func (f FetcherFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// FSFetcher reads bundles from a file system rooted at the site root,
// such as os.DirFS("public") or an embed.FS.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher creates a fetcher over fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// Fetch reads name from the file system.
func (f *FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}

	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, name, err)
	}
	return data, nil
}

// HTTPFetcher requests bundles over HTTP relative to a page URL, the same way
// a browser resolves "<rootPrefix>assets/locales/<code>.json" from that page.
type HTTPFetcher struct {
	page     *url.URL
	client   *http.Client
	resolver *sitepath.Resolver
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client. Defaults to a client with a 10 second timeout.
func WithHTTPClient(c *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithResolver sets the path resolver used to compute the root prefix.
func WithResolver(r *sitepath.Resolver) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if r != nil {
			f.resolver = r
		}
	}
}

// NewHTTPFetcher creates a fetcher for bundles referenced by the page at pageURL.
func NewHTTPFetcher(pageURL string, opts ...HTTPFetcherOption) (*HTTPFetcher, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid page URL %q: %v", ErrFetchFailed, pageURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: page URL %q must be absolute", ErrFetchFailed, pageURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	f := &HTTPFetcher{
		page:     u,
		client:   &http.Client{Timeout: 10 * time.Second},
		resolver: sitepath.New(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// URL returns the absolute URL a bundle name resolves to from the page.
func (f *HTTPFetcher) URL(name string) string {
	ref := &url.URL{Path: f.resolver.RootPrefix(f.page.Path) + strings.TrimPrefix(name, "/")}
	return f.page.ResolveReference(ref).String()
}

// Fetch performs GET on the resolved bundle URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := f.URL(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetchFailed, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetchFailed, target, err)
	}
	return data, nil
}

var (
	_ Fetcher = FetcherFunc(nil)
	_ Fetcher = (*FSFetcher)(nil)
	_ Fetcher = (*HTTPFetcher)(nil)
)
