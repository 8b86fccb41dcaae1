// Package sanitizer cleans HTML that reaches pages from translation bundles
// and rendered Markdown, using bluemonday policies.
package sanitizer
