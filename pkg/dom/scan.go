package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Marker attributes.
const (
	AttrKey         = "data-i18n"
	AttrHTML        = "data-i18n-html"
	AttrTarget      = "data-i18n-attr"
	AttrPlaceholder = "data-i18n-placeholder"
	AttrTitle       = "data-i18n-title"
	AttrRootPath    = "data-root-path"
	AttrAutoHeader  = "data-auto-header"
	AttrAutoFooter  = "data-auto-footer"
)

// markerSelector matches every element carrying a per-element marker.
const markerSelector = "[" + AttrKey + "],[" + AttrPlaceholder + "],[" + AttrRootPath + "]"

// Kind tells the applier where a resolved value is written.
type Kind uint8

const (
	KindText Kind = iota
	KindHTML
	KindAttr
	KindPlaceholder
	KindTitle
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindAttr:
		return "attr"
	case KindPlaceholder:
		return "placeholder"
	case KindTitle:
		return "title"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Descriptor is one translatable target found by Scan.
type Descriptor struct {
	Node *html.Node
	Kind Kind

	// Key is the translation key. Empty for KindPath.
	Key string

	// Attr is the attribute written by KindAttr, KindPlaceholder and KindPath.
	Attr string

	// Value is the link found at scan time for KindPath.
	Value string
}

// Scan walks the document once and returns its descriptors in document order.
// An element carrying several markers yields one descriptor per marker.
func Scan(doc *Document) []Descriptor {
	var out []Descriptor

	if root := doc.Root(); root != nil {
		if key := strings.TrimSpace(attr(root, AttrTitle)); key != "" {
			out = append(out, Descriptor{Node: root, Kind: KindTitle, Key: key})
		}
	}

	doc.Find(markerSelector).Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]

		if key, ok := s.Attr(AttrKey); ok && strings.TrimSpace(key) != "" {
			key = strings.TrimSpace(key)
			target, hasTarget := s.Attr(AttrTarget)
			target = strings.TrimSpace(target)
			switch {
			case hasTarget && target != "":
				out = append(out, Descriptor{Node: n, Kind: KindAttr, Key: key, Attr: target})
			case s.Is("[" + AttrHTML + "]"):
				out = append(out, Descriptor{Node: n, Kind: KindHTML, Key: key})
			default:
				out = append(out, Descriptor{Node: n, Kind: KindText, Key: key})
			}
		}

		if key, ok := s.Attr(AttrPlaceholder); ok && strings.TrimSpace(key) != "" {
			out = append(out, Descriptor{Node: n, Kind: KindPlaceholder, Key: strings.TrimSpace(key), Attr: "placeholder"})
		}

		if v, ok := s.Attr(AttrRootPath); ok {
			names := strings.Fields(strings.ReplaceAll(v, ",", " "))
			if len(names) == 0 {
				names = []string{"href", "src"}
			}
			for _, name := range names {
				if link, has := s.Attr(name); has {
					out = append(out, Descriptor{Node: n, Kind: KindPath, Attr: name, Value: link})
				}
			}
		}
	})

	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}
