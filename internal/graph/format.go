package graph

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
)

// Format is a named textual RDF serialization.
type Format struct {
	Name        string
	ContentType string
	codec       rdf.Format
}

var (
	Turtle   = Format{Name: "turtle", ContentType: "text/turtle; charset=utf-8", codec: rdf.Turtle}
	NTriples = Format{Name: "ntriples", ContentType: "application/n-triples; charset=utf-8", codec: rdf.NTriples}
)

// FormatNames lists every accepted format name, aliases included.
var FormatNames = []string{"ttl", "turtle", "nt", "ntriples", "n-triples"}

// ParseFormat resolves a format name. An empty name selects Turtle.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ttl", "turtle":
		return Turtle, nil
	case "nt", "ntriples", "n-triples":
		return NTriples, nil
	}
	return Format{}, fmt.Errorf("graph: unknown format %q: %w", name, apperr.ErrConfig)
}
