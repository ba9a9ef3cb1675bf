package dom

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// All returns an iterator over n and every node below it in depth-first pre-order.
// The iterator is lazy and may be restarted.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.all(yield)
	}
}

func (n *Node) all(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !c.all(yield) {
			return false
		}
	}
	return true
}

// Elements returns an iterator over the elements named name at or below n, in
// pre-order. An empty name matches every element.
func (n *Node) Elements(name string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for d := range n.All() {
			if d.Type == ElementNode && (name == "" || d.Tag.Name == name) && !yield(d) {
				return
			}
		}
	}
}

// Walk calls fn for n and every node below it in depth-first pre-order, with the depth
// relative to n (n itself is at depth 0). If fn returns false, the children of that node
// are skipped.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.walk(fn, depth+1)
	}
}

// Dump returns an indented outline of the subtree, one node or attribute per line:
//
//	| <p>
//	|   class="bold"
//	|   "Test"
//
// For a document node the outline starts at its children.
func (n *Node) Dump() string {
	var b strings.Builder
	if n.Type == DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dumpLevel(&b, c, 0)
		}
	} else {
		dumpLevel(&b, n, 0)
	}
	return b.String()
}

func dumpIndent(w io.Writer, level int) {
	_, _ = io.WriteString(w, "| ")
	for i := 0; i < level; i++ {
		_, _ = io.WriteString(w, "  ")
	}
}

func dumpLevel(w io.Writer, n *Node, level int) {
	dumpIndent(w, level)
	level++
	switch n.Type {
	case ElementNode:
		_, _ = fmt.Fprintf(w, "<%s>", n.Tag.Name)
		for _, a := range n.Attr {
			_, _ = io.WriteString(w, "\n")
			dumpIndent(w, level)
			_, _ = fmt.Fprintf(w, `%s="%s"`, a.Key, a.Val)
		}
	case TextNode:
		_, _ = fmt.Fprintf(w, `"%s"`, n.Data)
	default:
		_, _ = fmt.Fprintf(w, "#%s", n.Type)
	}
	_, _ = io.WriteString(w, "\n")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dumpLevel(w, c, level)
	}
}
