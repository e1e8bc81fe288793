package notes

import (
	"errors"
	"testing"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/graph"
	"github.com/starford/notegraph/internal/models"
	"github.com/starford/notegraph/internal/vocab"
)

const base = "https://example.org/kb#"

func objects(g *graph.Graph, s rdf.Subject, p rdf.Predicate) []string {
	var out []string
	for _, t := range g.Triples() {
		if t.Subj.Serialize(rdf.NTriples) == s.Serialize(rdf.NTriples) &&
			t.Pred.Serialize(rdf.NTriples) == p.Serialize(rdf.NTriples) {
			out = append(out, t.Obj.String())
		}
	}
	return out
}

func expectObjects(t *testing.T, g *graph.Graph, s rdf.Subject, p rdf.Predicate, want ...string) {
	t.Helper()
	got := objects(g, s, p)
	if len(got) != len(want) {
		t.Errorf("%s %s = %v, want %v", s, p, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s %s = %v, want %v", s, p, got, want)
			return
		}
	}
}

func TestCoiner(t *testing.T) {
	c := NewCoiner(base)
	if got := c.Coin(KindNote, "WeeklyReview"); got != base+"NoteWeeklyReview" {
		t.Errorf("Coin = %q", got)
	}
	if c.Coin(KindNote, "A") != c.Coin(KindNote, "A") {
		t.Error("Coin not stable")
	}
	if c.Coin(KindNote, "A") == c.Coin(KindNote, "B") {
		t.Error("distinct slugs coined the same identifier")
	}
	if c.Coin(KindNote, "A") == c.Coin(KindDaily, "A") {
		t.Error("distinct kinds coined the same identifier")
	}
	if _, err := c.IRI(KindNote, "Has{Brace}"); !errors.Is(err, apperr.ErrParse) {
		t.Errorf("invalid IRI err = %v, want ErrParse", err)
	}
}

func TestBinderDividerNote(t *testing.T) {
	g := graph.New()
	c := NewCoiner(base)

	b, err := NewBinder(g, c, "my-notes")
	if err != nil {
		t.Fatalf("NewBinder: %v", err)
	}
	expectObjects(t, g, b.IRI, vocab.Type, vocab.Notes+"Binder")
	expectObjects(t, g, b.IRI, vocab.Name, "MyNotes")

	d, err := NewDivider(g, c, b, "weekly-review")
	if err != nil {
		t.Fatalf("NewDivider: %v", err)
	}
	if d.IRI.String() != base+"DividerWeeklyReview" {
		t.Errorf("divider IRI = %s", d.IRI)
	}
	expectObjects(t, g, d.IRI, vocab.IsPartOf, b.IRI.String())

	file := models.MarkdownFile{Path: "weekly-review/plan_q1.md", Dir: "weekly-review", Parent: "weekly-review", Stem: "plan_q1"}
	n, err := NewNote(g, c, d, file, "kb/weekly-review/plan_q1.md")
	if err != nil {
		t.Fatalf("NewNote: %v", err)
	}
	if n.IRI.String() != base+"NotePlanQ1" {
		t.Errorf("note IRI = %s", n.IRI)
	}
	expectObjects(t, g, n.IRI, vocab.Type, vocab.Notes+"Note")
	expectObjects(t, g, n.IRI, vocab.Title, "PlanQ1")
	expectObjects(t, g, n.IRI, vocab.Filename, "kb/weekly-review/plan_q1.md")
	expectObjects(t, g, n.IRI, vocab.IsPartOf, d.IRI.String())
	expectObjects(t, g, d.IRI, vocab.Contains)
}

func TestTopicContainsNotes(t *testing.T) {
	g := graph.New()
	c := NewCoiner(base)

	topic, err := NewTopic(g, c, "projects", "projects")
	if err != nil {
		t.Fatalf("NewTopic: %v", err)
	}
	var noteIRIs []string
	for _, stem := range []string{"a", "b"} {
		file := models.MarkdownFile{Path: "projects/" + stem + ".md", Dir: "projects", Parent: "projects", Stem: stem}
		n, err := NewNote(g, c, topic, file, "projects/"+stem+".md")
		if err != nil {
			t.Fatalf("NewNote(%s): %v", stem, err)
		}
		noteIRIs = append(noteIRIs, n.IRI.String())

		expectObjects(t, g, n.IRI, vocab.Type, vocab.Notes+"Note")
		expectObjects(t, g, n.IRI, vocab.Title, stem)
		expectObjects(t, g, n.IRI, vocab.Filename, "projects/"+stem+".md")
		expectObjects(t, g, n.IRI, vocab.IsPartOf)
	}
	expectObjects(t, g, topic.IRI, vocab.Type, vocab.Notes+"Topic")
	expectObjects(t, g, topic.IRI, vocab.Contains, noteIRIs...)
}

func TestNewNote_UnknownParent(t *testing.T) {
	g := graph.New()
	c := NewCoiner(base)
	file := models.MarkdownFile{Path: "x.md", Dir: ".", Parent: "", Stem: "x"}

	if _, err := NewNote(g, c, Container{}, file, "x.md"); !errors.Is(err, apperr.ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
	if _, err := ContainerIRI(c, KindDivider, ""); !errors.Is(err, apperr.ErrParse) {
		t.Errorf("ContainerIRI err = %v, want ErrParse", err)
	}
	if g.Len() != 0 {
		t.Errorf("failed builders emitted %d triples", g.Len())
	}
}

func TestNewBinder_EmptyName(t *testing.T) {
	if _, err := NewBinder(graph.New(), NewCoiner(base), "--"); !errors.Is(err, apperr.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}
