// Package cleanup rewrites DOM trees in place: it drops unwanted attributes and elements,
// strips wrappers and normalizes whitespace.
//
// Every transform is idempotent, so applying it to its own output changes nothing.
// Transforms that restructure the tree only touch the nodes below the root they are
// given; the root itself is never removed.
package cleanup

import (
	"strings"

	"github.com/dpotapov/go-domx/dom"
	"github.com/dpotapov/go-domx/scan"
)

// Transform rewrites the subtree below root in place.
type Transform func(root *dom.Node)

// Chain returns a Transform that applies ts in order.
func Chain(ts ...Transform) Transform {
	return func(root *dom.Node) {
		Apply(root, ts...)
	}
}

// Apply applies ts to root in order.
func Apply(root *dom.Node, ts ...Transform) {
	for _, t := range ts {
		t(root)
	}
}

type tagSet map[string]struct{}

func newTagSet(names []string) tagSet {
	s := make(tagSet, len(names))
	for _, name := range names {
		s[scan.NewTag(name).Name] = struct{}{}
	}
	return s
}

func (s tagSet) has(n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	_, ok := s[n.Tag.Name]
	return ok
}

// AllowAttributes removes every attribute whose name is not in names from the elements of
// the subtree, root included.
func AllowAttributes(names ...string) Transform {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[strings.ToLower(name)] = struct{}{}
	}
	keep := func(a scan.Attribute) bool {
		_, ok := allowed[a.Key]
		return ok
	}
	return func(root *dom.Node) {
		for n := range root.All() {
			if n.Type == dom.ElementNode && len(n.Attr) > 0 {
				n.Attr = n.Attr.Filter(keep)
			}
		}
	}
}

// Retain removes every node below root for which keep returns false, together with its
// subtree. keep is not called for the nodes of a removed subtree.
func Retain(keep func(n *dom.Node) bool) Transform {
	var retain func(n *dom.Node)
	retain = func(n *dom.Node) {
		for c := range n.Children() {
			if !keep(c) {
				c.Detach()
				continue
			}
			retain(c)
		}
	}
	return retain
}

// Drop removes the elements named tags, with their content.
func Drop(tags ...string) Transform {
	set := newTagSet(tags)
	return Retain(func(n *dom.Node) bool { return !set.has(n) })
}

// postOrder calls fn for every node below n, children before their parent. fn may detach
// or unwrap the node it is given.
func postOrder(n *dom.Node, fn func(*dom.Node)) {
	for c := range n.Children() {
		postOrder(c, fn)
		fn(c)
	}
}

// Unwrap replaces the elements named tags by their children.
func Unwrap(tags ...string) Transform {
	set := newTagSet(tags)
	return func(root *dom.Node) {
		postOrder(root, func(n *dom.Node) {
			if set.has(n) {
				n.Unwrap()
			}
		})
	}
}

// PruneEmpty removes the elements named tags that have no children and no meaningful
// attribute. An attribute is meaningful if its value is not blank. Elements emptied by
// the removal of their children are removed in the same pass.
func PruneEmpty(tags ...string) Transform {
	set := newTagSet(tags)
	return func(root *dom.Node) {
		postOrder(root, func(n *dom.Node) {
			if set.has(n) && n.FirstChild == nil && !hasMeaningfulAttr(n) {
				n.Detach()
			}
		})
	}
}

func hasMeaningfulAttr(n *dom.Node) bool {
	for _, a := range n.Attr {
		if strings.TrimSpace(a.Val) != "" {
			return true
		}
	}
	return false
}

// preserveSpace lists the elements whose text is left untouched by CollapseWhitespace.
var preserveSpace = newTagSet([]string{"pre", "textarea", "script", "style"})

// CollapseWhitespace merges adjacent text nodes and normalizes the text nodes that hold
// only whitespace: such a node becomes a single space, or is removed when it is the first
// or the last child. The content of pre, textarea, script and style is left alone.
func CollapseWhitespace() Transform {
	var collapse func(n *dom.Node)
	collapse = func(n *dom.Node) {
		// Merging detaches the following siblings, so walk the links directly.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == dom.TextNode:
				for next := c.NextSibling; next != nil && next.Type == dom.TextNode; next = c.NextSibling {
					c.Data += next.Detach().Data
				}
			case !preserveSpace.has(c):
				collapse(c)
			}
		}
		for c := range n.Children() {
			if c.Type != dom.TextNode || !isBlank(c.Data) {
				continue
			}
			if c == n.FirstChild || c == n.LastChild {
				c.Detach()
			} else {
				c.Data = " "
			}
		}
	}
	return func(root *dom.Node) {
		if !preserveSpace.has(root) {
			collapse(root)
		}
	}
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}
