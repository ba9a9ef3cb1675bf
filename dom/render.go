// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Attribute values are written unescaped, single-quoted when they contain a double
//    quote, and with &quot; only when they contain both quote characters.
//  - Text escapes only the '<' bytes that would be read back as markup.

package dom

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

type writer interface {
	io.Writer
	io.ByteWriter
	WriteString(string) (int, error)
}

// Render renders the subtree rooted at n as HTML to w.
//
// Every non-void element gets an end tag, so the output is balanced even if the source
// was not. Text is written as it was parsed: entities are neither decoded by the parser
// nor encoded here. The only change is that a '<' which would start markup when read
// back is written as &lt;, which makes Build(Render(Build(x))) produce the same output
// again.
func Render(w io.Writer, n *Node) error {
	if x, ok := w.(writer); ok {
		return render(x, n)
	}
	buf := bufio.NewWriter(w)
	if err := render(buf, n); err != nil {
		return err
	}
	return buf.Flush()
}

// String renders the subtree rooted at n as HTML.
func (n *Node) String() string {
	var b strings.Builder
	// Writes to a strings.Builder do not fail.
	_ = render(&b, n)
	return b.String()
}

func render(w writer, n *Node) error {
	switch n.Type {
	case DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := render(w, c); err != nil {
				return err
			}
		}
		return nil
	case TextNode:
		if p := n.Parent; p != nil && p.Type == ElementNode && p.Tag.RawText() {
			_, err := w.WriteString(n.Data)
			return err
		}
		return escapeText(w, n.Data)
	case ElementNode:
		// No-op.
	default:
		return errors.New("dom: unknown node type")
	}

	// Render the <xxx> opening tag.
	if err := w.WriteByte('<'); err != nil {
		return err
	}
	if _, err := w.WriteString(n.Tag.Name); err != nil {
		return err
	}
	for _, a := range n.Attr {
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		if _, err := w.WriteString(a.Key); err != nil {
			return err
		}
		if a.Val == "" {
			continue
		}
		if err := w.WriteByte('='); err != nil {
			return err
		}
		if _, err := w.WriteString(QuoteAttr(a.Val)); err != nil {
			return err
		}
	}
	if err := w.WriteByte('>'); err != nil {
		return err
	}
	if n.Tag.Void {
		if n.FirstChild != nil {
			return errors.New("dom: void element <" + n.Tag.Name + "> has child nodes")
		}
		return nil
	}

	// Render any child nodes.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(w, c); err != nil {
			return err
		}
	}

	// Render the </xxx> closing tag.
	if _, err := w.WriteString("</"); err != nil {
		return err
	}
	if _, err := w.WriteString(n.Tag.Name); err != nil {
		return err
	}
	return w.WriteByte('>')
}

var attrEscaper = strings.NewReplacer(`"`, "&quot;")

// QuoteAttr returns val delimited for use as an attribute value. Values are written
// as is, between double quotes, or between single quotes if val holds a double quote.
// Only a value holding both quote characters is escaped, with &quot;, and that is
// the one case the parser does not read back unchanged.
func QuoteAttr(val string) string {
	switch {
	case !strings.Contains(val, `"`):
		return `"` + val + `"`
	case !strings.Contains(val, "'"):
		return "'" + val + "'"
	default:
		return `"` + attrEscaper.Replace(val) + `"`
	}
}

// escapeText writes s, replacing each '<' that starts markup by &lt;.
func escapeText(w writer, s string) error {
	i := 0
	for j := 0; j < len(s); j++ {
		if s[j] != '<' || !startsMarkup(s, j) {
			continue
		}
		if _, err := w.WriteString(s[i:j]); err != nil {
			return err
		}
		if _, err := w.WriteString("&lt;"); err != nil {
			return err
		}
		i = j + 1
	}
	_, err := w.WriteString(s[i:])
	return err
}

// startsMarkup reports whether the '<' at s[i] would be read as markup. The bytes after
// the end of s are unknown, since a sibling text node may follow, so running out of
// input counts as markup.
func startsMarkup(s string, i int) bool {
	if i+1 >= len(s) {
		return true
	}
	switch c := s[i+1]; {
	case isLetter(c), c == '!', c == '?':
		return true
	case c == '/':
		return i+2 >= len(s) || isLetter(s[i+2])
	}
	return false
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
