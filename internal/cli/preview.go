package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sysmanage/docsite/pkg/components"
	"github.com/sysmanage/docsite/pkg/dom"
	"github.com/sysmanage/docsite/pkg/i18n"
	"github.com/sysmanage/docsite/pkg/sitepath"
)

const maxPreviewPage = 8 << 20

// PreviewOptions configures the preview command.
type PreviewOptions struct {
	URL      string
	Lang     string
	BasePath string
	DocsDir  string
	Timeout  time.Duration
	Client   *http.Client
}

// ParsePreview parses preview flags.
func ParsePreview(fs *flag.FlagSet, args []string) (PreviewOptions, error) {
	var opts PreviewOptions
	fs.StringVar(&opts.URL, "url", "", "absolute URL of the page to render (required)")
	fs.StringVar(&opts.Lang, "lang", "", "language to render in (default: the site default)")
	fs.StringVar(&opts.BasePath, "base", sitepath.DefaultBase, "site base path")
	fs.StringVar(&opts.DocsDir, "docs-dir", sitepath.DefaultDocsDir, "documentation subtree directory")
	fs.DurationVar(&opts.Timeout, "timeout", 15*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.URL == "" {
		return opts, fmt.Errorf("%w: -url is required", ErrUsage)
	}
	return opts, nil
}

// Preview fetches a page of a statically hosted site together with its
// bundles and writes it translated, as a visitor would see it.
func Preview(ctx context.Context, opts PreviewOptions, out io.Writer) error {
	page, err := url.Parse(opts.URL)
	if err != nil || !page.IsAbs() {
		return fmt.Errorf("%w: -url must be an absolute URL", ErrUsage)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	resolver := sitepath.New(sitepath.WithBase(opts.BasePath), sitepath.WithDocsDir(opts.DocsDir))

	fetcher, err := i18n.NewHTTPFetcher(opts.URL, i18n.WithHTTPClient(client), i18n.WithResolver(resolver))
	if err != nil {
		return err
	}
	store, err := i18n.NewStore(fetcher)
	if err != nil {
		return err
	}

	code := store.DefaultLanguage()
	if opts.Lang != "" {
		var ok bool
		if code, ok = store.Languages().Match(opts.Lang); !ok {
			return fmt.Errorf("%w: %s", i18n.ErrUnsupportedLanguage, opts.Lang)
		}
	}
	if err := store.Load(ctx, code); err != nil {
		return err
	}

	doc, err := fetchPage(ctx, client, opts.URL)
	if err != nil {
		return err
	}

	pagePath := page.Path
	if pagePath == "" {
		pagePath = "/"
	}
	injector := components.New(resolver, components.WithLanguages(store.Languages()))
	if _, err := injector.AutoInject(doc, pagePath); err != nil {
		return err
	}
	if err := injector.InjectLanguageSwitcher(doc, code, nil); err != nil && !errors.Is(err, components.ErrNoHeader) {
		return err
	}

	// Fall back to the default when the requested bundle was missing.
	if !store.Loaded(code) {
		code = store.DefaultLanguage()
	}
	dom.NewApplier().Apply(doc, store.Translator(code), func(href string) string {
		return resolver.AdjustLink(href, pagePath)
	})
	return doc.Render(out)
}

func fetchPage(ctx context.Context, client *http.Client, target string) (*dom.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}
	return dom.Parse(io.LimitReader(resp.Body, maxPreviewPage))
}
