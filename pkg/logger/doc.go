// Package logger builds the site's slog logger.
//
// Records are written to stdout as JSON (or text, see [Config]) and enriched
// by [ContextExtractor] functions that pull request-scoped values such as the
// request id or the visitor's language out of the context:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor(), middlewares.LanguageExtractor())
//	log.InfoContext(r.Context(), "page rendered", slog.String("path", r.URL.Path))
//
// Setting SENTRY_DSN also forwards warnings and errors to Sentry; errors
// become issues. Call [Flush] before exit so buffered events are delivered.
package logger
