package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy      *bluemonday.Policy
	translationPolicy *bluemonday.Policy
	markdownPolicy    *bluemonday.Policy
	initOnce          sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		translationPolicy = NewTranslationPolicy()
		markdownPolicy = NewMarkdownPolicy()
	})
}

// NewTranslationPolicy returns the policy for HTML-bearing translation
// values: inline formatting, line breaks, code and links.
func NewTranslationPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"br", "span",
		"strong", "b", "em", "i", "u", "small", "mark",
		"code", "kbd",
	)
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "code", "a")
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// NewMarkdownPolicy returns the policy for rendered Markdown documents.
// It keeps heading ids and code block language classes.
func NewMarkdownPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	p.AllowAttrs("data-i18n", "data-i18n-html").OnElements("h1", "h2", "h3", "p", "span", "li")
	return p
}

// StripTags removes all markup and returns plain text.
func StripTags(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// Translation sanitizes an HTML translation value.
func Translation(s string) string {
	initPolicies()
	return translationPolicy.Sanitize(s)
}

// Markdown sanitizes HTML rendered from Markdown.
func Markdown(s string) string {
	initPolicies()
	return markdownPolicy.Sanitize(s)
}

// Custom applies policy. Returns s unchanged if policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}

// Filter adapts policy to a string filter, e.g. for dom.WithHTMLFilter.
// A nil policy yields the identity filter.
func Filter(policy *bluemonday.Policy) func(string) string {
	return func(s string) string {
		return Custom(s, policy)
	}
}
