// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Node carries a scan.Tag and an ordered attribute list instead of Data/DataAtom.
//  - Void elements and text nodes refuse children.

package dom

import (
	"github.com/dpotapov/go-domx/scan"
)

// A NodeType is the type of a Node.
type NodeType uint32

const (
	// DocumentNode is the synthetic container owned by a Document. A byte stream may have
	// several top-level siblings, so the root is never an element.
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	}
	return "unknown"
}

// A Node consists of a NodeType and some data (a tag with attributes for element nodes,
// raw text for text nodes) and is part of a tree of Nodes.
//
// A node owns its children. Parent is a back-reference used for upward navigation and
// detaching; a detached subtree is not reachable through its former parent.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type NodeType

	// Tag and Attr are set for element nodes.
	Tag  scan.Tag
	Attr scan.Attrs

	// Data is the text of a text node, byte for byte as it was in the source.
	Data string
}

// NewElement returns a detached element node.
func NewElement(name string, attrs ...scan.Attribute) *Node {
	return &Node{Type: ElementNode, Tag: scan.NewTag(name), Attr: attrs}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// IsVoid reports whether n is an element that can never have children.
func (n *Node) IsVoid() bool {
	return n.Type == ElementNode && n.Tag.Void
}

func (n *Node) checkContainer(op string) {
	if n.Type == TextNode || n.IsVoid() {
		panic("dom: " + op + " called on a " + n.describe() + " Node")
	}
}

func (n *Node) describe() string {
	if n.IsVoid() {
		return "void <" + n.Tag.Name + ">"
	}
	return n.Type.String()
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case newChild
// is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings, or if n cannot
// have children.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	n.checkContainer("InsertBefore")
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("dom: InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds a node c as a child of n.
//
// It will panic if c already has a parent or siblings, or if n cannot have children.
func (n *Node) AppendChild(c *Node) {
	n.checkContainer("AppendChild")
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("dom: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have
// no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("dom: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

// nodeStack is a stack of nodes.
type nodeStack []*Node

// pop pops the stack. It will panic if s is empty.
func (s *nodeStack) pop() *Node {
	i := len(*s)
	n := (*s)[i-1]
	(*s)[i-1] = nil
	*s = (*s)[:i-1]
	return n
}

// top returns the most recently pushed node, or nil if s is empty.
func (s *nodeStack) top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}

// truncate pops every node above index i, and the node at i itself.
func (s *nodeStack) truncate(i int) {
	clear((*s)[i:])
	*s = (*s)[:i]
}
