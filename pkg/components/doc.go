// Package components renders the shared site chrome (header, navbar, footer
// and language switcher) and splices it into parsed documents.
//
// Links are written relative to the page being rendered using the root prefix
// from sitepath, so the same markup works at any depth and under a project
// base path. Every text node carries a data-i18n marker; run the dom Applier
// after injection to translate it.
//
// Injection is idempotent: an existing .site-header, .site-footer or
// .language-switcher is replaced, never duplicated.
package components
