// Package domx parses possibly malformed HTML into a DOM tree, cleans the tree up and
// renders it back as balanced HTML.
//
// The building blocks live in the subpackages: scan is the event-based tokenizer, dom the
// tree with its builder and serializer, and cleanup the tree transforms. Cleaner wires
// them into a single pipeline.
package domx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dpotapov/go-domx/cleanup"
	"github.com/dpotapov/go-domx/dom"
)

// Cleaner builds a document, applies a list of transforms to it and serializes the
// result. The zero value passes documents through, only balancing their tags.
//
// A Cleaner is safe for concurrent use once configured, provided its transforms are.
// The transforms of the cleanup package are.
type Cleaner struct {
	// Transforms run in order on the document root.
	Transforms []cleanup.Transform

	// Options configures the tree builder. If Options.Logger is nil, Logger is used.
	Options dom.Options

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the cleaner only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger

	// opts are the builder options with the logger resolved.
	opts dom.Options
}

// NewCleanerFromPolicy returns a Cleaner that applies p.
func NewCleanerFromPolicy(p cleanup.Policy) (*Cleaner, error) {
	ts, err := p.Transforms()
	if err != nil {
		return nil, err
	}
	return &Cleaner{Transforms: ts, Options: p.Options()}, nil
}

func (c *Cleaner) setup() {
	c.init.Do(func() {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if c.Logger != nil {
			c.logger = c.Logger
		}
		c.opts = c.Options
		if c.opts.Logger == nil {
			c.opts.Logger = c.logger
		}
	})
}

// Document builds input and applies the transforms to it.
func (c *Cleaner) Document(input []byte) *dom.Document {
	c.setup()

	doc := dom.BuildWithOptions(input, c.opts)
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		cleanup.Apply(doc.Root(), c.Transforms...)
		return doc
	}

	built := doc.Len()
	cleanup.Apply(doc.Root(), c.Transforms...)
	c.logger.Debug("Clean document",
		"bytes", len(input),
		"nodes", built,
		"kept", doc.Len(),
		"transforms", len(c.Transforms))
	return doc
}

// Clean returns the cleaned form of input.
func (c *Cleaner) Clean(input []byte) []byte {
	return c.Document(input).Serialize()
}

// CleanReader reads a document from r and writes its cleaned form to w.
func (c *Cleaner) CleanReader(w io.Writer, r io.Reader) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if err := c.Document(input).Render(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
