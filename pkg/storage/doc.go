// Package storage keeps the published site in an S3-compatible bucket.
//
// [S3Storage] implements [Storage] with the AWS SDK v2 and works with AWS,
// MinIO and other compatible services. The site server reads through [FS],
// an fs.FS view of the bucket, so pages and translation bundles load from
// the bucket the same way they load from a local directory:
//
//	s, err := storage.New(cfg)
//	fetcher := i18n.NewFSFetcher(storage.NewFS(ctx, s))
//
// [Sync] publishes a local build, skipping unchanged files by MD5 ETag and
// optionally pruning objects that were removed locally.
package storage
