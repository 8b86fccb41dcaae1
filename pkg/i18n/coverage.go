package i18n

import (
	"slices"
	"strings"
)

// CoverageReport compares bundles against a reference bundle.
type CoverageReport struct {
	Reference     Code               `json:"reference"`
	ReferenceKeys int                `json:"reference_keys"`
	Languages     []LanguageCoverage `json:"languages"`
}

// LanguageCoverage is the coverage of one bundle.
type LanguageCoverage struct {
	Code           Code     `json:"code"`
	TotalKeys      int      `json:"total_keys"`
	Missing        []string `json:"missing_keys"`
	Extra          []string `json:"extra_keys"`
	CompletionRate float64  `json:"completion_rate"`
}

// Complete reports whether the bundle has every reference key.
func (c LanguageCoverage) Complete() bool {
	return len(c.Missing) == 0
}

// MissingWithPrefix returns the missing keys under a dot-key prefix
// such as "server_docs".
func (c LanguageCoverage) MissingWithPrefix(prefix string) []string {
	prefix = strings.TrimSuffix(prefix, ".") + "."
	var out []string
	for _, key := range c.Missing {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out
}

// Coverage reports the missing and extra keys of each bundle relative to
// reference. The completion rate is the share of reference keys present, so
// extra keys never push it above 100.
func Coverage(reference *Bundle, bundles ...*Bundle) CoverageReport {
	report := CoverageReport{
		Reference:     reference.Code(),
		ReferenceKeys: reference.Len(),
		Languages:     make([]LanguageCoverage, 0, len(bundles)),
	}

	refKeys := reference.Keys()
	for _, b := range bundles {
		if b == nil || b.Code() == reference.Code() {
			continue
		}

		lc := LanguageCoverage{
			Code:      b.Code(),
			TotalKeys: b.Len(),
			Missing:   []string{},
			Extra:     []string{},
		}
		for _, key := range refKeys {
			if _, ok := b.Get(key); !ok {
				lc.Missing = append(lc.Missing, key)
			}
		}
		for _, key := range b.Keys() {
			if _, ok := reference.Get(key); !ok {
				lc.Extra = append(lc.Extra, key)
			}
		}
		if n := len(refKeys); n > 0 {
			lc.CompletionRate = float64(n-len(lc.Missing)) / float64(n) * 100
		}
		report.Languages = append(report.Languages, lc)
	}

	slices.SortStableFunc(report.Languages, func(a, b LanguageCoverage) int {
		return strings.Compare(string(a.Code), string(b.Code))
	})

	return report
}
