// Package cookie writes and reads the site's cookies with shared attributes.
//
// Values are plain by default. With a secret of at least 32 bytes every value
// is signed with HMAC-SHA256, so a visitor cannot forge a language preference
// or visitor id:
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("DOCSITE_COOKIE_SECRET")),
//		cookie.WithPath("/sysmanage-docs/"),
//		cookie.WithSecure(true),
//	)
//
//	m.Set(w, "sysmanage-docs-language", "fr", 365*24*time.Hour)
//	code, err := m.Get(r, "sysmanage-docs-language")
//
// Get returns [ErrNotFound] for a missing cookie and [ErrBadSig] for a value
// whose signature does not verify.
package cookie
