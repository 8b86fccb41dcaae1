// Package internal is the HTTP core of the docsite server: an App wrapping a
// chi router with error-returning handlers and middleware, health endpoints,
// and graceful shutdown.
//
//	app := internal.New(
//		internal.WithLogger(log),
//		internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover(log)),
//		internal.WithHealth(checks, optional),
//		internal.WithHandlers(pages),
//	)
//	err := app.Run(ctx, ":8080", internal.ShutdownHook(closeRedis))
//
// Handlers return errors instead of writing error responses. The App renders
// them through its ErrorHandler, mapping HTTPError codes and deadline errors
// to statuses with StatusOf.
package internal
