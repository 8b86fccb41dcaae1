// Package sitepath computes relative paths between a page and the site root.
//
// Documentation pages are served from a static tree, possibly under a base
// path such as "/sysmanage-docs/" on GitHub Pages. Shared assets and chrome
// links must resolve regardless of how deep a page is, so every link is
// emitted relative to the current page:
//
//	r := sitepath.New(sitepath.WithBase("/sysmanage-docs/"))
//
//	r.RootPrefix("/sysmanage-docs/index.html")               // ""
//	r.RootPrefix("/sysmanage-docs/docs/server/install.html") // "../../"
//	r.AdjustLink("/config-builder.html", "/docs/api/")       // "../../config-builder.html"
//
// All functions are pure; the same input always yields the same output.
package sitepath
