// Package middlewares provides the docsite HTTP middleware.
//
//   - RequestID reuses or generates a request id and exposes it to logs
//     through RequestIDExtractor.
//   - Recover converts panics into a PanicError for the error handler.
//   - Timeout puts a deadline on the request context.
//   - Language resolves the visitor's language and stores an i18n.Session in
//     the request context (GetSession, GetLanguage, LanguageExtractor).
package middlewares
