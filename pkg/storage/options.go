package storage

// Option configures Put.
type Option func(*putOptions)

type putOptions struct {
	contentType  string
	cacheControl string
}

// WithContentType sets the object content type. Without it the type is
// derived from the key extension.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithCacheControl sets the Cache-Control header served for the object.
func WithCacheControl(v string) Option {
	return func(o *putOptions) {
		o.cacheControl = v
	}
}
