package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"time"
)

// FS exposes a Storage as a read-only fs.FS. Objects are downloaded whole on
// Open; directories do not exist, so callers resolve index files themselves.
type FS struct {
	ctx     context.Context
	store   Storage
	maxSize int64
}

// DefaultMaxObjectSize caps how much FS reads for a single object.
const DefaultMaxObjectSize = 16 << 20

// NewFS wraps store. ctx bounds every download made through the FS.
func NewFS(ctx context.Context, store Storage) *FS {
	return &FS{ctx: ctx, store: store, maxSize: DefaultMaxObjectSize}
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	body, info, err := f.store.Get(f.ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fs.ErrNotExist
		}
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, f.maxSize+1))
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	if int64(len(data)) > f.maxSize {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("object too large")}
	}

	return &file{
		Reader: bytes.NewReader(data),
		info:   fileInfo{name: path.Base(name), size: int64(len(data)), modTime: info.LastModified},
	}, nil
}

// ReadFile implements fs.ReadFileFS.
func (f *FS) ReadFile(name string) ([]byte, error) {
	fl, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer fl.Close()
	return io.ReadAll(fl)
}

// file is seekable so http.ServeContent can serve ranges.
type file struct {
	*bytes.Reader
	info fileInfo
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *file) Close() error               { return nil }

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i fileInfo) ModTime() time.Time { return i.modTime }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() any           { return nil }

var (
	_ fs.ReadFileFS = (*FS)(nil)
	_ io.Seeker     = (*file)(nil)
)
