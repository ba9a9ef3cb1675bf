package scan

import (
	a "golang.org/x/net/html/atom"
)

// Tag is the name and classification of a markup element. Names are always lower case.
type Tag struct {
	// Name is the lower-cased element name as written in the source.
	Name string
	// Atom is the interned form of Name for the known HTML elements, or zero for custom ones.
	Atom a.Atom
	// Void is set for the elements that never have children and never receive a close tag.
	Void bool
}

// NewTag returns the Tag for name, folding ASCII letters to lower case.
func NewTag(name string) Tag {
	name = toLower(name)
	t := Tag{Name: name, Atom: a.Lookup([]byte(name))}
	t.Void = isVoid(t.Atom)
	return t
}

// RawText reports whether the content of the element is read verbatim up to its close tag.
func (t Tag) RawText() bool {
	return t.Atom == a.Script || t.Atom == a.Style
}

func (t Tag) String() string {
	return t.Name
}

func isVoid(t a.Atom) bool {
	switch t {
	case a.Area, a.Base, a.Br, a.Col, a.Embed, a.Hr, a.Img, a.Input, a.Keygen, a.Link, a.Meta,
		a.Param, a.Source, a.Track, a.Wbr:
		return true
	}
	return false
}

// Attribute is a name/value pair of an element. An empty Val is the boolean form,
// e.g. <option selected>.
type Attribute struct {
	Key, Val string
}

// Attrs is an ordered list of attributes. Duplicated keys are kept in source order.
type Attrs []Attribute

// Get returns the value of the first attribute named key.
func (as Attrs) Get(key string) (string, bool) {
	for _, at := range as {
		if at.Key == key {
			return at.Val, true
		}
	}
	return "", false
}

// Has reports whether an attribute named key is present.
func (as Attrs) Has(key string) bool {
	_, ok := as.Get(key)
	return ok
}

// Filter returns the attributes for which keep returns true, reusing the backing array.
func (as Attrs) Filter(keep func(Attribute) bool) Attrs {
	out := as[:0]
	for _, at := range as {
		if keep(at) {
			out = append(out, at)
		}
	}
	clear(as[len(out):])
	return out
}

// toLower lower-cases ASCII letters only. Non-ASCII bytes are kept as is.
func toLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if c := b[j]; 'A' <= c && c <= 'Z' {
					b[j] = c + 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
