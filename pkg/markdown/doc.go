// Package markdown renders Markdown documentation pages into HTML documents
// that go through the same localization pipeline as hand-written pages.
//
// Front matter controls the page shell:
//
//	---
//	title: Installing the server
//	title_key: docs.server.install.title
//	active: documentation
//	footer: true
//	---
//
// Site-absolute links and images ("/docs/...") are marked with
// data-root-path so they resolve from any page depth.
package markdown
