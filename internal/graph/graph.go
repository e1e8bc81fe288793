// Package graph accumulates RDF triples and serializes them.
package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
)

// Graph is an append-only set of triples that remembers insertion order.
// Adding a triple that is already present is a no-op, so the serialized
// output depends only on the order of first insertion.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Add appends the triple (s, p, o) unless the graph already holds it.
// It reports whether the triple was new.
func (g *Graph) Add(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	t := rdf.Triple{Subj: s, Pred: p, Obj: o}
	k := key(t)
	if _, ok := g.seen[k]; ok {
		return false
	}
	g.seen[k] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Has reports whether the graph holds (s, p, o).
func (g *Graph) Has(s rdf.Subject, p rdf.Predicate, o rdf.Object) bool {
	_, ok := g.seen[key(rdf.Triple{Subj: s, Pred: p, Obj: o})]
	return ok
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the triples in insertion order.
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Keys returns the N-Triples form of every triple in insertion order.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.triples))
	for i, t := range g.triples {
		out[i] = key(t)
	}
	return out
}

// Serialize writes the graph to w in format f. Turtle output spells every
// IRI in full; coined local names are not always valid prefixed names.
func (g *Graph) Serialize(w io.Writer, f Format) error {
	enc := rdf.NewTripleEncoder(w, f.codec)
	enc.GenerateNamespaces = false
	for _, t := range g.triples {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("graph: encode %s: %w", f.Name, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("graph: flush %s: %w", f.Name, err)
	}
	return nil
}

// Parse decodes a serialized graph.
func Parse(r io.Reader, f Format) (*Graph, error) {
	g := New()
	dec := rdf.NewTripleDecoder(r, f.codec)
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return g, nil
		}
		if err != nil {
			return nil, fmt.Errorf("graph: decode %s: %v: %w", f.Name, err, apperr.ErrParse)
		}
		g.Add(t.Subj, t.Pred, t.Obj)
	}
}

// key is the N-Triples line of t without the trailing dot.
func key(t rdf.Triple) string {
	var b strings.Builder
	b.WriteString(t.Subj.Serialize(rdf.NTriples))
	b.WriteByte(' ')
	b.WriteString(t.Pred.Serialize(rdf.NTriples))
	b.WriteByte(' ')
	b.WriteString(t.Obj.Serialize(rdf.NTriples))
	return b.String()
}
