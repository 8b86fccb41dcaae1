package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page.
type Document struct {
	node *html.Node
	q    *goquery.Document
}

// Parse reads a complete HTML document. Missing <html>, <head> and <body>
// elements are created by the parser.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return NewDocument(node), nil
}

// ParseString parses s as a complete HTML document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already parsed document node.
func NewDocument(node *html.Node) *Document {
	return &Document{node: node, q: goquery.NewDocumentFromNode(node)}
}

// Node returns the document node.
func (d *Document) Node() *html.Node {
	return d.node
}

// Root returns the <html> element, or nil for a fragment without one.
func (d *Document) Root() *html.Node {
	for c := d.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

// Find runs a CSS selector over the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.q.Find(selector)
}

// Head returns the <head> selection.
func (d *Document) Head() *goquery.Selection {
	return d.q.Find("head").First()
}

// Body returns the <body> selection.
func (d *Document) Body() *goquery.Selection {
	return d.q.Find("body").First()
}

// Title returns the text of the document title.
func (d *Document) Title() string {
	return d.Head().Find("title").First().Text()
}

// SetTitle sets the document title, creating <title> when the head has none.
func (d *Document) SetTitle(title string) {
	head := d.Head()
	if head.Length() == 0 {
		return
	}
	t := head.Find("title").First()
	if t.Length() == 0 {
		head.AppendHtml("<title></title>")
		t = head.Find("title").First()
	}
	t.SetText(title)
}

// selection returns a selection holding n when n is still attached to the
// document.
func (d *Document) selection(n *html.Node) *goquery.Selection {
	return d.q.FindNodes(n)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.node)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
