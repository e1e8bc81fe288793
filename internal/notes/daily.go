package notes

import (
	"fmt"
	"path"
	"regexp"
	"time"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/models"
	"github.com/starford/notegraph/internal/slug"
	"github.com/starford/notegraph/internal/vocab"
)

// DailyLayout is the time layout of daily note stems.
const DailyLayout = "2006_01_02"

var dailyStemRe = regexp.MustCompile(`^\d{4}_\d{2}_\d{2}$`)

// ParseDate parses a daily note stem such as "2021_01_04".
func ParseDate(stem string) (time.Time, error) {
	if !dailyStemRe.MatchString(stem) {
		return time.Time{}, fmt.Errorf("notes: daily note %q does not match YYYY_MM_DD: %w", stem, apperr.ErrParse)
	}
	day, err := time.Parse(DailyLayout, stem)
	if err != nil {
		return time.Time{}, fmt.Errorf("notes: daily note %q: %v: %w", stem, err, apperr.ErrParse)
	}
	return day, nil
}

// DailyFile returns the path of the daily note for day inside dir.
func DailyFile(dir string, day time.Time) string {
	return path.Join(dir, day.Format(DailyLayout)+".md")
}

// DailyNote is a note named after a date and chained to its neighbors.
type DailyNote struct {
	Note
	Date time.Time
	// Previous and Next are the zero IRI when there is no neighbor.
	Previous rdf.IRI
	Next     rdf.IRI
}

// HasPrevious reports whether the note links back to an earlier note.
func (d DailyNote) HasPrevious() bool { return d.Previous != (rdf.IRI{}) }

// HasNext reports whether the note links to a later note.
func (d DailyNote) HasNext() bool { return d.Next != (rdf.IRI{}) }

// NewDailyNote creates the daily note for file inside container, linking
// it to the neighbors r finds on disk. The title is the raw stem.
func NewDailyNote(g Sink, c Coiner, container Container, file models.MarkdownFile, filename string, r *Resolver) (DailyNote, error) {
	if err := checkContainer(container, file); err != nil {
		return DailyNote{}, err
	}
	day, err := ParseDate(file.Stem)
	if err != nil {
		return DailyNote{}, fmt.Errorf("notes: %s: %w", file.Path, err)
	}
	iri, err := c.IRI(KindDaily, slug.Slugify(file.Stem))
	if err != nil {
		return DailyNote{}, err
	}
	nb, err := r.Resolve(day)
	if err != nil {
		return DailyNote{}, err
	}

	d := DailyNote{
		Note: Note{IRI: iri, Kind: KindDaily, Title: file.Stem, Filename: filename, Container: container.IRI},
		Date: day,
	}
	if !nb.Previous.IsZero() {
		if d.Previous, err = dailyIRI(c, nb.Previous); err != nil {
			return DailyNote{}, err
		}
	}
	if !nb.Next.IsZero() {
		if d.Next, err = dailyIRI(c, nb.Next); err != nil {
			return DailyNote{}, err
		}
	}

	d.emit(g, vocab.Daily, container)
	if d.HasPrevious() {
		g.Add(d.IRI, vocab.Previous, d.Previous)
	}
	if d.HasNext() {
		g.Add(d.IRI, vocab.Next, d.Next)
	}
	return d, nil
}

// dailyIRI coins the identifier of the daily note for day without needing
// that note to have been built.
func dailyIRI(c Coiner, day time.Time) (rdf.IRI, error) {
	return c.IRI(KindDaily, slug.Slugify(day.Format(time.DateOnly)))
}
