package dom

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// WriteXHTML writes the subtree rooted at n to w as well-formed XML.
//
// Character references in text and attribute values are decoded, since the serializer
// escapes what XML requires. Childless elements are self-closed, boolean attributes get
// an empty value and only the first of duplicated attributes is written. Elements whose
// names are not XML names are replaced by their children; such attributes are dropped.
func WriteXHTML(w io.Writer, n *Node) error {
	doc := etree.NewDocument()
	appendXHTML(&doc.Element, n)
	_, err := doc.WriteTo(w)
	return err
}

func appendXHTML(dst *etree.Element, n *Node) {
	switch n.Type {
	case DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendXHTML(dst, c)
		}
	case TextNode:
		data := n.Data
		if p := n.Parent; p == nil || p.Type != ElementNode || !p.Tag.RawText() {
			data = html.UnescapeString(data)
		}
		if data = xmlText(data); data != "" {
			dst.AddChild(etree.NewText(data))
		}
	case ElementNode:
		if !isXMLName(n.Tag.Name) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				appendXHTML(dst, c)
			}
			return
		}
		el := etree.NewElement(n.Tag.Name)
		for _, a := range n.Attr {
			if !isXMLName(a.Key) || el.SelectAttr(a.Key) != nil {
				continue
			}
			el.CreateAttr(a.Key, xmlText(html.UnescapeString(a.Val)))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendXHTML(el, c)
		}
		dst.AddChild(el)
	}
}

// isXMLName reports whether s can be used as an XML element or attribute name. Bytes
// outside ASCII are accepted as name characters.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isLetter(c), c == '_', c == ':', c >= 0x80:
		case i > 0 && ('0' <= c && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// xmlText drops the characters XML 1.0 does not allow in a document.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF, 0xD800 <= r && r <= 0xDFFF:
			return -1
		}
		return r
	}, s)
}
