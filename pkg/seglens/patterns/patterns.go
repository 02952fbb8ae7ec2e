// Package patterns holds the fixed pattern tables that drive review tagging.
//
// Tables are data, not code: each set is an ordered list of labels with their
// match phrases, loaded once at startup and immutable afterwards. Declaration
// order is significant: it is the tie break for top-N sub-pattern rankings.
package patterns

import (
	"fmt"
	"strings"

	"github.com/cognicore/seglens/pkg/seglens/internalerr"
)

// Layer identifies which segmentation layer a label belongs to.
type Layer string

const (
	LayerIdentity   Layer = "identity"
	LayerMotivation Layer = "motivation"
)

// Pattern is one named label with the phrases that trigger it.
type Pattern struct {
	Label   string
	Phrases []string
}

// Set is an ordered, immutable collection of patterns for one concern.
type Set struct {
	name     string
	patterns []Pattern
	order    map[string]int
}

// NewSet builds a set from ordered patterns. Phrases are lowercased once here
// so matching never re-normalizes them.
func NewSet(name string, pats []Pattern) *Set {
	s := &Set{
		name:     name,
		patterns: make([]Pattern, len(pats)),
		order:    make(map[string]int, len(pats)),
	}
	for i, p := range pats {
		phrases := make([]string, len(p.Phrases))
		for j, ph := range p.Phrases {
			phrases[j] = strings.ToLower(ph)
		}
		s.patterns[i] = Pattern{Label: p.Label, Phrases: phrases}
		s.order[p.Label] = i
	}
	return s
}

// Name returns the set's name.
func (s *Set) Name() string { return s.name }

// Labels returns the label names in declaration order.
func (s *Set) Labels() []string {
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.Label
	}
	return out
}

// Order returns the declaration index of a label, or -1 if unknown.
func (s *Set) Order(label string) int {
	if i, ok := s.order[label]; ok {
		return i
	}
	return -1
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int { return len(s.patterns) }

// MatchLower returns the labels whose phrases appear in the pre-lowercased
// text, in declaration order. Every pattern is evaluated independently; a text
// may match any number of labels.
func (s *Set) MatchLower(lower string) []string {
	var matched []string
	for _, p := range s.patterns {
		for _, ph := range p.Phrases {
			if strings.Contains(lower, ph) {
				matched = append(matched, p.Label)
				break
			}
		}
	}
	return matched
}

// Match lowercases text and delegates to MatchLower.
func (s *Set) Match(text string) []string {
	return s.MatchLower(strings.ToLower(text))
}

// MatchesLabel reports whether the pre-lowercased text matches one specific label.
func (s *Set) MatchesLabel(lower, label string) bool {
	i, ok := s.order[label]
	if !ok {
		return false
	}
	for _, ph := range s.patterns[i].Phrases {
		if strings.Contains(lower, ph) {
			return true
		}
	}
	return false
}

// Tables bundles the five pattern sets the tagger evaluates.
type Tables struct {
	Identity        *Set
	Motivation      *Set
	Pains           *Set
	Benefits        *Set
	Transformations *Set

	layers map[string]Layer
}

// NewTables assembles the tables and derives the label→layer lookup from the
// two segmentation sets. A label appearing in both layers is a configuration
// error.
func NewTables(identity, motivation, pains, benefits, transformations *Set) (*Tables, error) {
	t := &Tables{
		Identity:        identity,
		Motivation:      motivation,
		Pains:           pains,
		Benefits:        benefits,
		Transformations: transformations,
		layers:          make(map[string]Layer, identity.Len()+motivation.Len()),
	}
	for _, label := range identity.Labels() {
		t.layers[label] = LayerIdentity
	}
	for _, label := range motivation.Labels() {
		if _, dup := t.layers[label]; dup {
			return nil, fmt.Errorf("label %q in both segment layers: %w", label, internalerr.ErrInvalidConfig)
		}
		t.layers[label] = LayerMotivation
	}
	return t, nil
}

// LayerOf returns the layer a segment label belongs to.
func (t *Tables) LayerOf(label string) (Layer, bool) {
	layer, ok := t.layers[label]
	return layer, ok
}

// SegmentSet returns the pattern set backing the given layer.
func (t *Tables) SegmentSet(layer Layer) *Set {
	if layer == LayerIdentity {
		return t.Identity
	}
	return t.Motivation
}
