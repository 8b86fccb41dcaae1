// Package dom rewrites parsed HTML documents in place from translation
// markers.
//
// A document is scanned once into a list of typed descriptors, one per
// marked element and marker kind, which are then applied with a Translator.
// The recognised markers are:
//
//	data-i18n="key"                  text content (default)
//	data-i18n="key" data-i18n-html   inner HTML
//	data-i18n="key" data-i18n-attr="title"
//	                                 the named attribute
//	data-i18n-placeholder="key"      the placeholder attribute
//	<html data-i18n-title="key">     the document title
//	data-root-path[="href src"]      root-relative links made relative to the page
//
// Every Apply also sets dir and lang on the <html> element from the
// translator's language.
//
// HTML-bearing translations are inserted as-is. Bundles are treated as
// trusted author content; configure WithHTMLFilter to sanitize them.
package dom
