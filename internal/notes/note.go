package notes

import (
	"fmt"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/models"
	"github.com/starford/notegraph/internal/slug"
	"github.com/starford/notegraph/internal/vocab"
)

// Note is the node for one markdown file.
type Note struct {
	IRI       rdf.IRI
	Kind      Kind
	Title     string
	Filename  string
	Container rdf.IRI
}

// NewNote creates the note for file inside container. filename is the
// value recorded as notes:filename.
//
// Notes in a divider are titled with the slug of their stem and point at
// the divider with dcterms:isPartOf. Notes in a topic keep the raw stem as
// title and the topic points at them with notes:contains.
func NewNote(g Sink, c Coiner, container Container, file models.MarkdownFile, filename string) (Note, error) {
	if err := checkContainer(container, file); err != nil {
		return Note{}, err
	}
	s := slug.Slugify(file.Stem)
	if s == "" {
		return Note{}, fmt.Errorf("notes: %s: stem %q slugifies to nothing: %w", file.Path, file.Stem, apperr.ErrParse)
	}
	iri, err := c.IRI(KindNote, s)
	if err != nil {
		return Note{}, err
	}

	title := s
	if container.IsTopic() {
		title = file.Stem
	}
	n := Note{IRI: iri, Kind: KindNote, Title: title, Filename: filename, Container: container.IRI}
	n.emit(g, vocab.Note, container)
	return n, nil
}

func (n Note) emit(g Sink, class rdf.IRI, container Container) {
	g.Add(n.IRI, vocab.Type, class)
	g.Add(n.IRI, vocab.Title, vocab.String(n.Title))
	g.Add(n.IRI, vocab.Filename, vocab.String(n.Filename))
	if container.IsTopic() {
		g.Add(container.IRI, vocab.Contains, n.IRI)
	} else {
		g.Add(n.IRI, vocab.IsPartOf, container.IRI)
	}
}

func checkContainer(container Container, file models.MarkdownFile) error {
	if container.IRI == (rdf.IRI{}) {
		return fmt.Errorf("notes: %s: no container: %w", file.Path, apperr.ErrParse)
	}
	return checkFolderName(file.Parent)
}
