package scan

import (
	"bytes"
	"fmt"
)

// Parse scans input in a single pass and reports open tags, close tags and text to h in
// document order.
//
// Malformed markup is never an error. The recovery rules are:
//   - tag and attribute names are folded to lower case;
//   - a '<' that does not start a tag, an end tag, a comment or a declaration is text;
//   - an attribute without '=' has an empty value;
//   - a quoted attribute value without the closing quote runs to the end of input;
//   - a tag that reaches the end of input before '>' is reported with the attributes
//     whose names were complete, or as text if its name was not complete;
//   - void tags, and tags written as <x/>, are followed by a synthetic EndTag;
//   - comments produce no Text or tag events, and an unterminated comment runs to the
//     end of input;
//   - the content of script and style elements is a single Text event.
//
// The only error Parse returns is one returned by h, wrapped with the input offset of the
// event that failed. Use errors.Is to test for a specific error.
func Parse(input []byte, h Handler) error {
	s := &scanner{in: input, h: h}
	s.comments, _ = h.(CommentHandler)
	s.doctypes, _ = h.(DoctypeHandler)
	return s.run()
}

var (
	commentStart = []byte("<!--")
	commentEnd   = []byte("-->")
	endTagStart  = []byte("</")
	doctype      = []byte("doctype")
)

// tagState is the state of the start tag reader. The text, tag-open, end-tag-name and
// comment states of the scanner are the methods run, tagOpen, endTag and comment.
type tagState int

const (
	beforeAttrNameState tagState = iota
	attrNameState
	afterAttrNameState
	beforeAttrValueState
	attrValueQuotedState
	attrValueUnquotedState
	selfClosingStartTagState
)

type scanner struct {
	in  []byte
	pos int
	// text is the offset where the pending text starts. Pending text is in[text:pos].
	text int

	h        Handler
	comments CommentHandler
	doctypes DoctypeHandler
}

func (s *scanner) run() error {
	for s.pos < len(s.in) {
		i := bytes.IndexByte(s.in[s.pos:], '<')
		if i < 0 {
			break
		}
		s.pos += i
		if err := s.tagOpen(); err != nil {
			return err
		}
	}
	return s.flush(len(s.in))
}

// tagOpen decides what the '<' at s.pos starts.
func (s *scanner) tagOpen() error {
	start := s.pos
	switch c := s.peek(1); {
	case isLetter(c):
		return s.startTag(start)
	case c == '/' && isLetter(s.peek(2)):
		return s.endTag(start)
	case c == '!':
		if bytes.HasPrefix(s.in[start:], commentStart) {
			return s.comment(start)
		}
		return s.declaration(start)
	case c == '?':
		// <?xml ...?> and friends are dropped like bogus comments.
		return s.skipTo(start, '>')
	}
	s.pos++
	return nil
}

func (s *scanner) startTag(start int) error {
	nameEnd := s.scanName(start + 1)
	if nameEnd == len(s.in) {
		// The name never completed: the bytes stay in the pending text.
		s.pos = nameEnd
		return nil
	}
	tag := NewTag(string(s.in[start+1 : nameEnd]))

	var (
		attrs       []Attribute
		key         string
		keyStart    int
		selfClosing bool
		i           = nameEnd
		st          = beforeAttrNameState
	)
loop:
	for {
		switch st {
		case beforeAttrNameState:
			i = s.skipSpace(i)
			if i == len(s.in) {
				break loop
			}
			switch s.in[i] {
			case '>':
				i++
				break loop
			case '/':
				i++
				st = selfClosingStartTagState
			default:
				// The first byte always belongs to the name, even if it is '='.
				keyStart = i
				i++
				st = attrNameState
			}
		case attrNameState:
			for i < len(s.in) && !isSpace(s.in[i]) && s.in[i] != '/' && s.in[i] != '>' && s.in[i] != '=' {
				i++
			}
			if i == len(s.in) {
				// Incomplete attribute name at the end of input is dropped.
				break loop
			}
			key = toLower(string(s.in[keyStart:i]))
			st = afterAttrNameState
		case afterAttrNameState:
			i = s.skipSpace(i)
			if i < len(s.in) && s.in[i] == '=' {
				i++
				st = beforeAttrValueState
				continue
			}
			attrs = append(attrs, Attribute{Key: key})
			st = beforeAttrNameState
		case beforeAttrValueState:
			i = s.skipSpace(i)
			if i == len(s.in) {
				attrs = append(attrs, Attribute{Key: key})
				break loop
			}
			switch s.in[i] {
			case '"', '\'':
				st = attrValueQuotedState
			case '>':
				attrs = append(attrs, Attribute{Key: key})
				i++
				break loop
			default:
				st = attrValueUnquotedState
			}
		case attrValueQuotedState:
			quote := s.in[i]
			i++
			j := bytes.IndexByte(s.in[i:], quote)
			if j < 0 {
				attrs = append(attrs, Attribute{Key: key, Val: string(s.in[i:])})
				i = len(s.in)
				break loop
			}
			attrs = append(attrs, Attribute{Key: key, Val: string(s.in[i : i+j])})
			i += j + 1
			st = beforeAttrNameState
		case attrValueUnquotedState:
			vs := i
			for i < len(s.in) && !isSpace(s.in[i]) && s.in[i] != '>' {
				i++
			}
			attrs = append(attrs, Attribute{Key: key, Val: string(s.in[vs:i])})
			st = beforeAttrNameState
		case selfClosingStartTagState:
			if i < len(s.in) && s.in[i] == '>' {
				selfClosing = true
				i++
				break loop
			}
			// A stray '/' inside the tag is ignored.
			st = beforeAttrNameState
		}
	}

	if err := s.flush(start); err != nil {
		return err
	}
	s.pos, s.text = i, i

	if err := s.stopped(start, s.h.StartTag(tag, attrs)); err != nil {
		return err
	}
	if tag.Void || selfClosing {
		return s.stopped(start, s.h.EndTag(tag.Name))
	}
	if tag.RawText() {
		return s.rawText(tag.Name)
	}
	return nil
}

// rawText consumes the content of a script or style element up to its close tag, which
// is left for the main loop.
func (s *scanner) rawText(name string) error {
	i := s.pos
	for {
		j := bytes.Index(s.in[i:], endTagStart)
		if j < 0 {
			i = len(s.in)
			break
		}
		i += j
		k := i + len(endTagStart) + len(name)
		if k < len(s.in) && bytes.EqualFold(s.in[i+len(endTagStart):k], []byte(name)) &&
			(isSpace(s.in[k]) || s.in[k] == '/' || s.in[k] == '>') {
			break
		}
		i += len(endTagStart)
	}
	if err := s.flush(i); err != nil {
		return err
	}
	s.pos = i
	return nil
}

func (s *scanner) endTag(start int) error {
	nameEnd := s.scanName(start + 2)
	if nameEnd == len(s.in) {
		s.pos = nameEnd
		return nil
	}
	name := toLower(string(s.in[start+2 : nameEnd]))

	// Whatever follows the name up to '>' is ignored.
	end := len(s.in)
	if j := bytes.IndexByte(s.in[nameEnd:], '>'); j >= 0 {
		end = nameEnd + j + 1
	}

	if err := s.flush(start); err != nil {
		return err
	}
	s.pos, s.text = end, end
	return s.stopped(start, s.h.EndTag(name))
}

func (s *scanner) comment(start int) error {
	if err := s.flush(start); err != nil {
		return err
	}
	bodyStart := start + len(commentStart)
	body, end := s.in[bodyStart:], len(s.in)
	if i := bytes.Index(body, commentEnd); i >= 0 {
		body = body[:i]
		end = bodyStart + i + len(commentEnd)
	}
	s.pos, s.text = end, end
	if s.comments != nil {
		return s.stopped(start, s.comments.Comment(body))
	}
	return nil
}

// declaration handles <!...> markup other than comments. Only DOCTYPE is reported.
func (s *scanner) declaration(start int) error {
	if err := s.skipTo(start, '>'); err != nil {
		return err
	}
	body := s.in[start+2 : s.pos]
	body = bytes.TrimSuffix(body, []byte{'>'})
	if s.doctypes == nil || len(body) < len(doctype) || !bytes.EqualFold(body[:len(doctype)], doctype) {
		return nil
	}
	return s.stopped(start, s.doctypes.Doctype(bytes.TrimSpace(body[len(doctype):])))
}

// skipTo drops the markup from start up to and including the next c.
func (s *scanner) skipTo(start int, c byte) error {
	if err := s.flush(start); err != nil {
		return err
	}
	end := len(s.in)
	if j := bytes.IndexByte(s.in[start:], c); j >= 0 {
		end = start + j + 1
	}
	s.pos, s.text = end, end
	return nil
}

// flush reports the pending text up to end, if there is any.
func (s *scanner) flush(end int) error {
	if end <= s.text {
		return nil
	}
	off := s.text
	data := s.in[off:end]
	s.text = end
	return s.stopped(off, s.h.Text(data))
}

func (s *scanner) stopped(off int, err error) error {
	if err != nil {
		return fmt.Errorf("scan: stopped at offset %d: %w", off, err)
	}
	return nil
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.in) {
		return s.in[s.pos+n]
	}
	return 0
}

// scanName returns the end of the tag name starting at i.
func (s *scanner) scanName(i int) int {
	for i < len(s.in) && !isSpace(s.in[i]) && s.in[i] != '/' && s.in[i] != '>' {
		i++
	}
	return i
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.in) && isSpace(s.in[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
