package dom

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/dpotapov/go-domx/scan"
)

// HTMLImpliedEndTags closes the elements whose end tag HTML lets authors omit when a
// sibling starts, e.g. <li>One<li>Two. Use it as Options.ImpliedEndTags.
var HTMLImpliedEndTags = map[string][]string{
	"li":     {"li"},
	"dt":     {"dt", "dd"},
	"dd":     {"dt", "dd"},
	"p":      {"p"},
	"option": {"option"},
	"tr":     {"td", "th", "tr"},
	"td":     {"td", "th"},
	"th":     {"td", "th"},
}

// Options configures a Builder.
type Options struct {
	// ImpliedEndTags maps a start tag name to the names of the elements it closes. While
	// the current element is named in ImpliedEndTags[T], a start tag T pops it first.
	// A nil map closes nothing implicitly, so <li>One<li>Two nests the second item.
	ImpliedEndTags map[string][]string

	// Logger receives debug records for the recovery decisions. Nil discards them.
	Logger *slog.Logger
}

// Builder consumes scanner events and assembles a Document. It keeps an explicit stack of
// open elements; the insertion point is the top of the stack, or the document root when
// the stack is empty.
//
// A Builder produces one document. It must not be used after Finish.
type Builder struct {
	doc *Document

	// oe is the stack of open elements. Void elements are never pushed.
	oe nodeStack

	impliedEndTags map[string][]string
	logger         *slog.Logger
}

var (
	_ scan.Handler        = (*Builder)(nil)
	_ scan.DoctypeHandler = (*Builder)(nil)
)

// NewBuilder returns a Builder for an empty document.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		doc:            NewDocument(),
		impliedEndTags: opts.ImpliedEndTags,
		logger:         opts.Logger,
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// top returns the insertion point.
func (b *Builder) top() *Node {
	if n := b.oe.top(); n != nil {
		return n
	}
	return b.doc.root
}

// addChild adds a child node n to the top element, and pushes n onto the stack
// of open elements if it can have children.
func (b *Builder) addChild(n *Node) {
	b.top().AppendChild(n)
	if !n.IsVoid() {
		b.oe = append(b.oe, n)
	}
}

// StartTag implements scan.Handler.
func (b *Builder) StartTag(tag scan.Tag, attrs []scan.Attribute) error {
	if closes := b.impliedEndTags[tag.Name]; len(closes) > 0 {
		for n := b.oe.top(); n != nil && slices.Contains(closes, n.Tag.Name); n = b.oe.top() {
			b.oe.pop()
			b.logger.Debug("Close element implicitly", "tag", n.Tag.Name, "by", tag.Name)
		}
	}
	b.addChild(&Node{Type: ElementNode, Tag: tag, Attr: attrs})
	return nil
}

// EndTag implements scan.Handler. It closes the nearest open element with the same name
// and every element opened after it. An end tag with no open match is ignored.
func (b *Builder) EndTag(name string) error {
	for i := len(b.oe) - 1; i >= 0; i-- {
		if b.oe[i].Tag.Name != name {
			continue
		}
		if i < len(b.oe)-1 {
			b.logger.Debug("Close elements implicitly", "tag", name, "count", len(b.oe)-1-i)
		}
		b.oe.truncate(i)
		return nil
	}
	if !scan.NewTag(name).Void {
		// Void elements are closed by their start tag, so their end tags never match.
		b.logger.Debug("Ignore unmatched end tag", "tag", name)
	}
	return nil
}

// Text implements scan.Handler. Consecutive Text calls produce separate nodes.
func (b *Builder) Text(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	b.top().AppendChild(NewText(string(data)))
	return nil
}

// Doctype implements scan.DoctypeHandler. Only the first declaration is kept.
func (b *Builder) Doctype(data []byte) error {
	if b.doc.Doctype != "" {
		b.logger.Debug("Ignore repeated doctype", "doctype", string(data))
		return nil
	}
	b.doc.Doctype = string(data)
	return nil
}

// Finish closes every element left open, innermost first, and returns the document.
func (b *Builder) Finish() *Document {
	if len(b.oe) > 0 {
		b.logger.Debug("Close elements at end of input", "count", len(b.oe), "innermost", b.oe.top().Tag.Name)
		b.oe.truncate(0)
	}
	return b.doc
}

// Build parses input into a Document with the default options. It never fails: any byte
// sequence yields a tree.
func Build(input []byte) *Document {
	return BuildWithOptions(input, Options{})
}

// BuildWithOptions is like Build with the given options.
func BuildWithOptions(input []byte, opts Options) *Document {
	b := NewBuilder(opts)
	// The builder never stops the scan, so there is no error to report.
	_ = scan.Parse(input, b)
	return b.Finish()
}

// Parse reads r to the end and builds a Document. The only possible error comes from r.
func Parse(r io.Reader, opts Options) (*Document, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return BuildWithOptions(input, opts), nil
}
