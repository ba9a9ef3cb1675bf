package cleanup

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/dpotapov/go-domx/dom"
)

// Policy is a declarative cleanup configuration, usually loaded from TOML:
//
//	allow_attributes = ["href", "src", "alt"]
//	drop = ["script", "style"]
//	unwrap = ["font", "span"]
//	prune_empty = ["p", "div", "b", "i"]
//	collapse_whitespace = true
//	filter = 'is_text || attr["class"] != "ad"'
//
//	[implied_end_tags]
//	li = ["li"]
//
// Unset keys do nothing; in particular, a missing allow_attributes keeps every attribute.
type Policy struct {
	AllowAttributes    []string            `toml:"allow_attributes"`
	Drop               []string            `toml:"drop"`
	Unwrap             []string            `toml:"unwrap"`
	PruneEmpty         []string            `toml:"prune_empty"`
	CollapseWhitespace bool                `toml:"collapse_whitespace"`
	Filter             string              `toml:"filter"`
	ImpliedEndTags     map[string][]string `toml:"implied_end_tags"`
}

// LoadPolicy decodes a TOML policy from r. Unknown keys are an error.
func LoadPolicy(r io.Reader) (Policy, error) {
	var p Policy
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&p); err != nil {
		return Policy{}, fmt.Errorf("decode policy: %w", err)
	}
	return p, nil
}

// Transforms returns the transforms the policy asks for in the order they run: filter,
// drop, unwrap, allow_attributes, collapse_whitespace, prune_empty. Whitespace is collapsed
// again after pruning, since removed elements may leave text nodes next to each other.
func (p Policy) Transforms() ([]Transform, error) {
	var ts []Transform
	if p.Filter != "" {
		f, err := Filter(p.Filter)
		if err != nil {
			return nil, err
		}
		ts = append(ts, f)
	}
	if len(p.Drop) > 0 {
		ts = append(ts, Drop(p.Drop...))
	}
	if len(p.Unwrap) > 0 {
		ts = append(ts, Unwrap(p.Unwrap...))
	}
	if p.AllowAttributes != nil {
		ts = append(ts, AllowAttributes(p.AllowAttributes...))
	}
	if p.CollapseWhitespace {
		ts = append(ts, CollapseWhitespace())
	}
	if len(p.PruneEmpty) > 0 {
		ts = append(ts, PruneEmpty(p.PruneEmpty...))
		if p.CollapseWhitespace {
			ts = append(ts, CollapseWhitespace())
		}
	}
	return ts, nil
}

// Options returns the builder options of the policy.
func (p Policy) Options() dom.Options {
	return dom.Options{ImpliedEndTags: p.ImpliedEndTags}
}
