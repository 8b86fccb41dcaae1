package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sysmanage/docsite/internal/config"
	"github.com/sysmanage/docsite/pkg/storage"
)

// PublishOptions configures the publish command.
type PublishOptions struct {
	Prune      bool
	DryRun     bool
	Skip       []string
	PageCache  string
	AssetCache string
}

// ParsePublish parses publish flags.
func ParsePublish(fs *flag.FlagSet, args []string) (PublishOptions, error) {
	var (
		opts PublishOptions
		skip string
	)
	fs.BoolVar(&opts.Prune, "prune", false, "delete objects that no longer exist locally")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "list local files without uploading")
	fs.StringVar(&skip, "skip", ".git/,.env", "comma-separated path prefixes to leave out")
	fs.StringVar(&opts.PageCache, "page-cache", "public, max-age=300", "Cache-Control for pages")
	fs.StringVar(&opts.AssetCache, "asset-cache", "public, max-age=86400", "Cache-Control for assets")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	for _, p := range strings.Split(skip, ",") {
		if p = strings.TrimSpace(p); p != "" {
			opts.Skip = append(opts.Skip, p)
		}
	}
	return opts, nil
}

// Publish uploads the local site root to the configured bucket. Unchanged
// objects are skipped.
func Publish(ctx context.Context, cfg *config.Config, opts PublishOptions, out io.Writer) error {
	if !cfg.Storage.Enabled() {
		return fmt.Errorf("%w: DOCSITE_S3_BUCKET is not set", ErrUsage)
	}
	store, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}
	return publish(ctx, store, os.DirFS(cfg.Root), opts, out)
}

func publish(ctx context.Context, store storage.Storage, fsys fs.FS, opts PublishOptions, out io.Writer) error {
	if opts.DryRun {
		store = dryRun{Storage: store}
	}

	syncOpts := []storage.SyncOption{
		storage.WithCacheControls(opts.PageCache, opts.AssetCache),
		storage.WithSkip(opts.Skip...),
	}
	if opts.Prune {
		syncOpts = append(syncOpts, storage.WithPrune())
	}

	res, err := storage.Sync(ctx, store, fsys, syncOpts...)
	if err != nil {
		return err
	}

	for _, k := range res.Uploaded {
		fmt.Fprintf(out, "upload  %s\n", k)
	}
	for _, k := range res.Deleted {
		fmt.Fprintf(out, "delete  %s\n", k)
	}
	fmt.Fprintf(out, "%d uploaded, %d unchanged, %d deleted\n",
		len(res.Uploaded), len(res.Unchanged), len(res.Deleted))
	return nil
}

// dryRun reads from the wrapped store but never changes it.
type dryRun struct {
	storage.Storage
}

func (d dryRun) Put(_ context.Context, key string, _ io.Reader, size int64, _ ...storage.Option) (*storage.FileInfo, error) {
	return &storage.FileInfo{Key: key, Size: size}, nil
}

func (d dryRun) Delete(context.Context, string) error {
	return nil
}
