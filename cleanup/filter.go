package cleanup

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dpotapov/go-domx/dom"
)

// filterEnv is what a filter expression sees for one node.
type filterEnv struct {
	// Tag is the element name, empty for text nodes.
	Tag string `expr:"tag"`
	// Attr maps attribute names to values. The first of duplicated attributes wins.
	Attr map[string]string `expr:"attr"`
	// Text is the data of a text node, empty for elements.
	Text   string `expr:"text"`
	IsText bool   `expr:"is_text"`
	// Depth is 0 for the children of the root the filter runs on.
	Depth int `expr:"depth"`
}

// Filter compiles src, an expr-lang boolean expression, into a Transform that works like
// Retain: nodes for which the expression is false are removed with their subtree. The
// expression can use tag, attr, text, is_text and depth, e.g.
//
//	is_text || tag != "font" && attr["class"] != "ad"
//
// A node for which the expression fails at run time is kept.
func Filter(src string) (Transform, error) {
	prog, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}
	return func(root *dom.Node) {
		// A VM is not safe for concurrent use, so every run gets its own.
		var machine vm.VM
		var retain func(n *dom.Node, depth int)
		retain = func(n *dom.Node, depth int) {
			for c := range n.Children() {
				if !accept(&machine, prog, c, depth) {
					c.Detach()
					continue
				}
				retain(c, depth+1)
			}
		}
		retain(root, 0)
	}, nil
}

func accept(machine *vm.VM, prog *vm.Program, n *dom.Node, depth int) bool {
	env := filterEnv{Depth: depth}
	switch n.Type {
	case dom.ElementNode:
		env.Tag = n.Tag.Name
		env.Attr = make(map[string]string, len(n.Attr))
		for i := len(n.Attr) - 1; i >= 0; i-- {
			env.Attr[n.Attr[i].Key] = n.Attr[i].Val
		}
	case dom.TextNode:
		env.Text = n.Data
		env.IsText = true
	}
	out, err := machine.Run(prog, env)
	if err != nil {
		return true
	}
	keep, ok := out.(bool)
	return !ok || keep
}
