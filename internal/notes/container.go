package notes

import (
	"fmt"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/slug"
	"github.com/starford/notegraph/internal/vocab"
)

// Binder is the root of the binder layout.
type Binder struct {
	IRI  rdf.IRI
	Name string
}

// NewBinder creates the binder called name.
func NewBinder(g Sink, c Coiner, name string) (Binder, error) {
	s := slug.Slugify(name)
	if s == "" {
		return Binder{}, fmt.Errorf("notes: binder name %q is empty: %w", name, apperr.ErrConfig)
	}
	iri, err := c.IRI(KindBinder, s)
	if err != nil {
		return Binder{}, err
	}

	g.Add(iri, vocab.Type, vocab.Binder)
	g.Add(iri, vocab.Name, vocab.String(s))
	return Binder{IRI: iri, Name: s}, nil
}

// Container is the folder-level node that notes belong to: a Divider in
// the binder layout or a Topic in the topic layout.
type Container struct {
	IRI  rdf.IRI
	Kind Kind
	Name string
	// Binder is the zero IRI for topics.
	Binder rdf.IRI
}

// IsTopic reports whether the container aggregates its notes with
// notes:contains instead of being pointed at by dcterms:isPartOf.
func (c Container) IsTopic() bool {
	return c.Kind == KindTopic
}

// ContainerIRI coins the identifier a folder called name gets under kind
// without emitting anything. The walker keys its container table on it.
func ContainerIRI(c Coiner, kind Kind, name string) (rdf.IRI, error) {
	if err := checkFolderName(name); err != nil {
		return rdf.IRI{}, err
	}
	return c.IRI(kind, slug.Slugify(name))
}

// NewDivider creates the divider for folder name inside binder.
func NewDivider(g Sink, c Coiner, binder Binder, name string) (Container, error) {
	iri, err := ContainerIRI(c, KindDivider, name)
	if err != nil {
		return Container{}, err
	}
	s := slug.Slugify(name)

	g.Add(iri, vocab.Type, vocab.Divider)
	g.Add(iri, vocab.Name, vocab.String(s))
	g.Add(iri, vocab.IsPartOf, binder.IRI)
	return Container{IRI: iri, Kind: KindDivider, Name: s, Binder: binder.IRI}, nil
}

// NewTopic creates the standalone topic for folder name found at dir.
func NewTopic(g Sink, c Coiner, name, dir string) (Container, error) {
	iri, err := ContainerIRI(c, KindTopic, name)
	if err != nil {
		return Container{}, err
	}
	s := slug.Slugify(name)

	g.Add(iri, vocab.Type, vocab.Topic)
	g.Add(iri, vocab.Name, vocab.String(s))
	g.Add(iri, vocab.Path, vocab.String(dir))
	return Container{IRI: iri, Kind: KindTopic, Name: s}, nil
}

func checkFolderName(name string) error {
	switch name {
	case "", ".", "/", `\`:
		return fmt.Errorf("notes: cannot determine parent folder %q: %w", name, apperr.ErrParse)
	}
	if slug.Slugify(name) == "" {
		return fmt.Errorf("notes: folder name %q slugifies to nothing: %w", name, apperr.ErrParse)
	}
	return nil
}
