// Package i18n loads per-language translation bundles and resolves dot-path
// keys against them, with fallback to a default language.
//
// The package is built around four pieces:
//
//   - Languages: the fixed set of supported codes, each with a display name
//     and a right-to-left flag.
//   - Store: fetches bundles on demand through a Fetcher, caches each one for
//     its lifetime and resolves keys (active bundle, then default bundle,
//     then the key itself).
//   - Selector: picks the initial language from a persisted preference, a
//     browser locale or an Accept-Language header.
//   - Session: the per-visitor context object holding the active language,
//     persisting changes and re-rendering through Refreshers.
//
// # Basic Usage
//
//	store, err := i18n.NewStore(i18n.NewFSFetcher(os.DirFS("site")))
//	if err != nil {
//		return err
//	}
//
//	sess := i18n.NewSession(store,
//		i18n.WithLocale("zh-HK"),
//		i18n.WithPreference(pref),
//	)
//	code, err := sess.Init(ctx) // zh_TW
//
//	sess.T("nav.documentation")
//	sess.T("footer.copyright", i18n.M{"year": 2025})
//
// # Bundles
//
// A bundle is a nested JSON object with string leaves, published at
// assets/locales/<code>.json relative to the site root:
//
//	{"nav": {"documentation": "Docs"}}
//
// YAML bundles are accepted when the bundle path ends in .yaml or .yml.
//
// # Fallback
//
// A failed fetch or a malformed bundle is logged and the default language is
// loaded in its place. Missing keys are not errors: the literal key is
// returned so incomplete translations stay visible.
//
// # Placeholders
//
// Resolved strings may contain {{name}} placeholders. Every occurrence is
// replaced by the matching parameter; placeholders without a parameter are
// left as-is.
//
// # Coverage
//
// Coverage compares bundles against a reference bundle and reports missing
// keys, extra keys and the completion rate of each language.
package i18n
