// Package site serves the documentation site: it resolves request paths to
// pages in an fs.FS, injects the shared chrome, applies the visitor's
// translations on the server and caches the result per language.
//
// Routes (relative to the site base):
//
//	GET|POST /lang/{code}   switch language, redirect to ?return=
//	GET|HEAD /*             pages (.html, .md) and static assets
package site
