package storage

// S3API exposes the client seam to tests.
type S3API = s3API

// NewWithClient builds an S3Storage around a fake client.
func NewWithClient(client S3API, cfg Config) *S3Storage {
	cfg.applyDefaults()
	return &S3Storage{client: client, cfg: cfg}
}

// MD5Hex exposes the ETag digest to tests.
var MD5Hex = md5Hex
