package dom

import (
	"bytes"
	"io"
)

// Document is a parsed byte stream. It owns a synthetic root node whose children are the
// top-level nodes of the input.
type Document struct {
	// Doctype is what followed the DOCTYPE keyword of the first <!DOCTYPE ...> declaration,
	// e.g. "html". Empty if there was none.
	Doctype string

	root *Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: &Node{Type: DocumentNode}}
}

// Root returns the synthetic root node.
func (d *Document) Root() *Node {
	return d.root
}

// Len returns the number of nodes in the document, not counting the root.
func (d *Document) Len() int {
	count := -1
	for range d.root.All() {
		count++
	}
	return count
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	if d.Doctype != "" {
		if _, err := io.WriteString(w, "<!DOCTYPE "+d.Doctype+">"); err != nil {
			return err
		}
	}
	return Render(w, d.root)
}

// Serialize returns the document as HTML. If the tree holds a void element with
// children, which only direct edits of the link fields can produce, the output stops
// after that element's start tag; use Render to get the error.
func (d *Document) Serialize() []byte {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.Bytes()
}

// String returns the debug outline of the document, see Node.Dump.
func (d *Document) String() string {
	return d.root.Dump()
}
