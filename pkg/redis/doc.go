// Package redis opens the optional Redis connection used for language
// preferences and the rendered page cache.
//
// Open validates the URL (redis:// or rediss://), applies pool and timeout
// settings and pings the server, retrying with a linear backoff while the
// server comes up:
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithRetry(5, time.Second))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Check adapts the client to a readiness check.
package redis
