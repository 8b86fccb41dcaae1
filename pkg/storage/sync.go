package storage

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// SyncResult counts what Sync changed.
type SyncResult struct {
	Uploaded  []string
	Unchanged []string
	Deleted   []string
}

// SyncOption configures Sync.
type SyncOption func(*syncOptions)

type syncOptions struct {
	prune        bool
	pageCache    string
	assetCache   string
	skipPrefixes []string
}

// WithPrune deletes remote objects that no longer exist locally.
func WithPrune() SyncOption {
	return func(o *syncOptions) {
		o.prune = true
	}
}

// WithCacheControls sets Cache-Control for pages and for every other file.
func WithCacheControls(pages, assets string) SyncOption {
	return func(o *syncOptions) {
		o.pageCache = pages
		o.assetCache = assets
	}
}

// WithSkip excludes local paths starting with any of prefixes.
func WithSkip(prefixes ...string) SyncOption {
	return func(o *syncOptions) {
		o.skipPrefixes = append(o.skipPrefixes, prefixes...)
	}
}

// Sync uploads every file of fsys to store. Files whose size and MD5 ETag
// match the remote object are skipped.
func Sync(ctx context.Context, store Storage, fsys fs.FS, opts ...SyncOption) (*SyncResult, error) {
	o := &syncOptions{
		pageCache:  "public, max-age=300",
		assetCache: "public, max-age=86400",
	}
	for _, opt := range opts {
		opt(o)
	}

	remote, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	existing := make(map[string]FileInfo, len(remote))
	for _, fi := range remote {
		existing[fi.Key] = fi
	}

	res := &SyncResult{}
	local := make(map[string]struct{})

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || o.skipped(p) {
			return nil
		}
		local[p] = struct{}{}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		if fi, ok := existing[p]; ok && fi.Size == int64(len(data)) && strings.Trim(fi.ETag, `"`) == md5Hex(data) {
			res.Unchanged = append(res.Unchanged, p)
			return nil
		}

		cc := o.assetCache
		if IsPage(p) || path.Ext(p) == ".json" || path.Ext(p) == ".yaml" {
			cc = o.pageCache
		}
		if _, err := store.Put(ctx, p, bytes.NewReader(data), int64(len(data)),
			WithContentType(ContentTypeFor(p, data)),
			WithCacheControl(cc),
		); err != nil {
			return fmt.Errorf("upload %s: %w", p, err)
		}
		res.Uploaded = append(res.Uploaded, p)
		return nil
	})
	if err != nil {
		return res, err
	}

	if o.prune {
		for key := range existing {
			if _, ok := local[key]; ok || o.skipped(key) {
				continue
			}
			if err := store.Delete(ctx, key); err != nil {
				return res, fmt.Errorf("delete %s: %w", key, err)
			}
			res.Deleted = append(res.Deleted, key)
		}
	}

	return res, nil
}

func (o *syncOptions) skipped(p string) bool {
	for _, prefix := range o.skipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
