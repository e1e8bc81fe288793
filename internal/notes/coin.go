// Package notes builds the graph nodes for binders, dividers, topics and
// notes, and links daily notes to their neighbors.
//
// Every builder computes all identifiers and literals before it emits its
// first triple, so a failing builder leaves the graph untouched.
package notes

import (
	"fmt"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
)

// Kind is the identifier prefix of an entity.
type Kind string

const (
	KindBinder  Kind = "Binder"
	KindDivider Kind = "Divider"
	KindTopic   Kind = "Topic"
	KindNote    Kind = "Note"
	KindDaily   Kind = "Daily"
)

// Sink receives triples. *graph.Graph implements it.
type Sink interface {
	Add(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool
}

// Coiner mints entity identifiers under a base URI.
type Coiner struct {
	base string
}

// NewCoiner returns a Coiner for base. The base is used verbatim.
func NewCoiner(base string) Coiner {
	return Coiner{base: base}
}

// Coin returns base + kind + slug.
func (c Coiner) Coin(kind Kind, slug string) string {
	return c.base + string(kind) + slug
}

// IRI coins the identifier and checks that it is a valid IRI.
func (c Coiner) IRI(kind Kind, slug string) (rdf.IRI, error) {
	s := c.Coin(kind, slug)
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return rdf.IRI{}, fmt.Errorf("notes: coin %s %q: %v: %w", kind, s, err, apperr.ErrParse)
	}
	return iri, nil
}
