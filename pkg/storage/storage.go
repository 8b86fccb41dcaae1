package storage

import (
	"context"
	"io"
	"time"
)

// Storage is an object store holding the published site.
type Storage interface {
	// Get opens an object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, *FileInfo, error)

	// Head returns object metadata without the body.
	Head(ctx context.Context, key string) (*FileInfo, error)

	// Put uploads size bytes from r.
	Put(ctx context.Context, key string, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]FileInfo, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Bucket    string `env:"DOCSITE_S3_BUCKET"`
	AccessKey string `env:"DOCSITE_S3_ACCESS_KEY"`
	SecretKey string `env:"DOCSITE_S3_SECRET_KEY"`

	// Endpoint is set for MinIO and other S3-compatible services.
	Endpoint string `env:"DOCSITE_S3_ENDPOINT"`
	Region   string `env:"DOCSITE_S3_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every key, so one bucket can hold several sites.
	Prefix string `env:"DOCSITE_S3_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"DOCSITE_S3_PATH_STYLE"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key          string
	ContentType  string
	ETag         string
	Size         int64
	LastModified time.Time
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
