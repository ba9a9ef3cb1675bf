package dom

import (
	"golang.org/x/net/html"

	"github.com/dpotapov/go-domx/scan"
)

// ToHTML copies the subtree rooted at n into a golang.org/x/net/html tree, e.g. for
// html.Render or for code written against that package.
func ToHTML(n *Node) *html.Node {
	m := &html.Node{}
	switch n.Type {
	case DocumentNode:
		m.Type = html.DocumentNode
	case ElementNode:
		m.Type = html.ElementNode
		m.Data = n.Tag.Name
		m.DataAtom = n.Tag.Atom
		if len(n.Attr) > 0 {
			m.Attr = make([]html.Attribute, len(n.Attr))
			for i, a := range n.Attr {
				m.Attr[i] = html.Attribute{Key: a.Key, Val: a.Val}
			}
		}
	case TextNode:
		m.Type = html.TextNode
		m.Data = n.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.AppendChild(ToHTML(c))
	}
	return m
}

// FromHTML copies a golang.org/x/net/html tree. Comment, doctype and raw nodes have no
// counterpart and are skipped, as are children of void elements. Namespaced attributes
// are keyed "ns:key". FromHTML returns nil if m itself has no counterpart.
func FromHTML(m *html.Node) *Node {
	var n *Node
	switch m.Type {
	case html.DocumentNode:
		n = &Node{Type: DocumentNode}
	case html.ElementNode:
		n = NewElement(m.Data)
		if len(m.Attr) > 0 {
			n.Attr = make(scan.Attrs, len(m.Attr))
			for i, a := range m.Attr {
				key := a.Key
				if a.Namespace != "" {
					key = a.Namespace + ":" + key
				}
				n.Attr[i] = scan.Attribute{Key: key, Val: a.Val}
			}
		}
		if n.IsVoid() {
			return n
		}
	case html.TextNode:
		return NewText(m.Data)
	default:
		return nil
	}
	for c := m.FirstChild; c != nil; c = c.NextSibling {
		if cn := FromHTML(c); cn != nil {
			n.AppendChild(cn)
		}
	}
	return n
}
