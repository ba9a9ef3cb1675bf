package scan

import "errors"

// ErrStop can be returned by a Handler to stop the scan early. Any other non-nil error
// stops it too; ErrStop only saves callers from declaring their own sentinel.
var ErrStop = errors.New("scan: stopped by handler")

// Handler receives the structural events recognized by Parse, in document order.
//
// The byte slices passed to the handler alias the input and are only valid during the
// call. A handler that keeps them must copy.
//
// Returning a non-nil error from any method stops the scan, and Parse returns that error.
type Handler interface {
	// StartTag is called for every open tag. Void tags and tags written as <x/> are
	// followed by an EndTag call for the same name. The attrs slice is freshly allocated
	// for every call and may be retained.
	StartTag(tag Tag, attrs []Attribute) error

	// EndTag is called for every close tag, matched or not. Name is lower case.
	EndTag(name string) error

	// Text is called with the text between two structural markers. It is never empty.
	Text(data []byte) error
}

// CommentHandler is implemented by handlers that want to see comments. The data is the
// comment body without the <!-- and --> delimiters.
type CommentHandler interface {
	Comment(data []byte) error
}

// DoctypeHandler is implemented by handlers that want to see the <!DOCTYPE ...>
// declaration. The data is what follows the DOCTYPE keyword, with surrounding
// whitespace removed.
type DoctypeHandler interface {
	Doctype(data []byte) error
}
