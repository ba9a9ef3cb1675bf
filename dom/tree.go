package dom

import (
	"iter"
	"strings"

	"github.com/dpotapov/go-domx/scan"
)

// Children returns an iterator over the direct children of n, in order.
//
// The next sibling is read before each child is yielded, so the loop body may detach
// the current child.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Detach removes n from its parent and returns it. The subtree below n stays intact and
// may be attached elsewhere. Detaching a node without a parent does nothing.
func (n *Node) Detach() *Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// Replace puts newNode in n's position and detaches n.
//
// It will panic if n has no parent or newNode is attached.
func (n *Node) Replace(newNode *Node) {
	p := n.Parent
	if p == nil {
		panic("dom: Replace called for a detached Node")
	}
	p.InsertBefore(newNode, n)
	p.RemoveChild(n)
}

// InsertChild inserts c at position index among n's children. An index equal to the
// number of children appends.
//
// It will panic if index is out of range, c is attached, or n cannot have children.
func (n *Node) InsertChild(index int, c *Node) {
	if index < 0 {
		panic("dom: InsertChild index out of range")
	}
	ref := n.FirstChild
	for i := 0; i < index; i++ {
		if ref == nil {
			panic("dom: InsertChild index out of range")
		}
		ref = ref.NextSibling
	}
	n.InsertBefore(c, ref)
}

// Unwrap replaces n by its children, which keep their order.
//
// It will panic if n has no parent.
func (n *Node) Unwrap() {
	p := n.Parent
	if p == nil {
		panic("dom: Unwrap called for a detached Node")
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		p.InsertBefore(c, n)
	}
	p.RemoveChild(n)
}

// GetAttr returns the value of the first attribute named key.
func (n *Node) GetAttr(key string) (string, bool) {
	return n.Attr.Get(key)
}

// SetAttr sets the first attribute named key to val, or appends a new attribute.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, scan.Attribute{Key: key, Val: val})
}

// RemoveAttr removes every attribute named key.
func (n *Node) RemoveAttr(key string) {
	n.Attr = n.Attr.Filter(func(a scan.Attribute) bool { return a.Key != key })
}

// TextContent returns the concatenated data of all text nodes below n, in document order.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	for d := range n.All() {
		if d.Type == TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}
