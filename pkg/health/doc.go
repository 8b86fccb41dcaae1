// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(
//		health.Checks{"bundles": bundleCheck},
//		health.WithOptional(health.Checks{"redis": redis.Check(client)}),
//	))
//
// Responses are plain text unless the client sends Accept: application/json
// or ?format=json. A failing required check answers 503; a failing optional
// check reports "degraded" with 200.
package health
