package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage parses an Accept-Language header into locale strings
// ordered by descending quality. Wildcards and malformed entries are dropped.
//
// Example header: "zh-HK,zh;q=0.9,en;q=0.8"
// Returns: ["zh-HK", "zh", "en"]
func ParseAcceptLanguage(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == language.Und {
			continue
		}
		locales = append(locales, tag.String())
	}
	return locales
}

var (
	scriptHant  = language.MustParseScript("Hant")
	regionsHant = map[string]bool{"TW": true, "HK": true, "MO": true}
)

// isChinese reports whether locale names a Chinese variant, and whether that
// variant is written in traditional script. Taiwan, Hong Kong and Macau are
// traditional whatever the script subtag says; elsewhere Hant is traditional.
func isChinese(locale string) (chinese, traditional bool) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		lower := strings.ToLower(locale)
		if !strings.HasPrefix(lower, "zh") {
			return false, false
		}
		for _, r := range []string{"tw", "hk", "mo", "hant"} {
			if strings.Contains(lower, r) {
				return true, true
			}
		}
		return true, false
	}

	base, _ := tag.Base()
	if base.String() != "zh" {
		return false, false
	}

	if region, conf := tag.Region(); conf == language.Exact && regionsHant[region.String()] {
		return true, true
	}
	script, conf := tag.Script()
	return true, conf == language.Exact && script == scriptHant
}
