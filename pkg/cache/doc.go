// Package cache stores rendered, localized pages.
//
// A page is identified by [Key] (language plus request path). Two backends
// implement [Cache]: [Memory], an in-process LRU with TTL expiration, and
// [Redis], which keeps pages in hashes so several instances share renders.
//
// [Renderer] sits in front of a cache and collapses concurrent misses for the
// same key into one render:
//
//	r := cache.NewRenderer(cache.NewMemory(), 10*time.Minute)
//	page, hit, err := r.Get(ctx, cache.Key(lang, path), func(ctx context.Context) (cache.Page, error) {
//		return cache.NewPage(render(), "text/html; charset=utf-8"), nil
//	})
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// backend default (1 hour), negative never expires.
package cache
