package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/sysmanage/docsite/pkg/dom"
)

// rootLinks marks site-absolute links and images with data-root-path so the
// page pipeline rewrites them relative to the rendered page.
type rootLinks struct{}

// RootLinks is a goldmark extension that marks "/..." links and images for
// root-prefix adjustment.
var RootLinks goldmark.Extender = rootLinks{}

func (rootLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(rootLinks{}, 500),
	))
}

func (rootLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			if siteAbsolute(string(node.Destination)) {
				node.SetAttributeString(dom.AttrRootPath, []byte("href"))
			}
		case *ast.Image:
			if siteAbsolute(string(node.Destination)) {
				node.SetAttributeString(dom.AttrRootPath, []byte("src"))
			}
		}
		return ast.WalkContinue, nil
	})
}

func siteAbsolute(dest string) bool {
	return strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//")
}
