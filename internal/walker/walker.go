// Package walker turns a markdown tree into a notes graph.
package walker

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/knakk/rdf"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/graph"
	"github.com/starford/notegraph/internal/models"
	"github.com/starford/notegraph/internal/notes"
	"github.com/starford/notegraph/internal/storage"
)

// Layouts.
const (
	// LayoutBinder nests dividers in a binder; notes point at their divider.
	LayoutBinder = "binder"
	// LayoutTopic creates standalone topics that contain their notes.
	LayoutTopic = "topic"
)

// DefaultDailyFolder is the folder name holding daily notes.
const DefaultDailyFolder = "daily-status"

// Options control a walk.
type Options struct {
	// BaseURI prefixes every identifier.
	BaseURI string
	// Layout is LayoutBinder or LayoutTopic.
	Layout string
	// BinderName names the binder. Required for LayoutBinder.
	BinderName string
	// DailyFolder is the parent folder name that marks daily notes.
	DailyFolder string
	// FilenamePrefix is joined in front of each file's relative path to
	// form notes:filename, normally the root as given on the command line.
	FilenamePrefix string
	Logger         *slog.Logger
}

// Stats counts what a walk produced.
type Stats struct {
	Files      int
	Containers int
	Notes      int
	DailyNotes int
	Triples    int
}

type walker struct {
	store      storage.Provider
	opts       Options
	graph      *graph.Graph
	coiner     notes.Coiner
	binder     notes.Binder
	containers map[rdf.IRI]notes.Container
	resolvers  map[string]*notes.Resolver
	stats      Stats
}

// Walk lists every markdown file in store and builds the graph. The walk
// stops at the first error and the partial graph is discarded.
func Walk(store storage.Provider, opts Options) (*graph.Graph, Stats, error) {
	if opts.DailyFolder == "" {
		opts.DailyFolder = DefaultDailyFolder
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	w := &walker{
		store:      store,
		opts:       opts,
		graph:      graph.New(),
		coiner:     notes.NewCoiner(opts.BaseURI),
		containers: make(map[rdf.IRI]notes.Container),
		resolvers:  make(map[string]*notes.Resolver),
	}
	if err := w.run(); err != nil {
		return nil, Stats{}, err
	}
	w.stats.Triples = w.graph.Len()
	return w.graph, w.stats, nil
}

func (w *walker) run() error {
	switch w.opts.Layout {
	case LayoutBinder:
		b, err := notes.NewBinder(w.graph, w.coiner, w.opts.BinderName)
		if err != nil {
			return err
		}
		w.binder = b
	case LayoutTopic:
	default:
		return fmt.Errorf("walker: unknown layout %q: %w", w.opts.Layout, apperr.ErrConfig)
	}

	files, err := w.store.List()
	if err != nil {
		return err
	}
	w.stats.Files = len(files)

	if err := w.prepareDaily(files); err != nil {
		return err
	}

	for _, f := range files {
		if err := w.visit(f); err != nil {
			return err
		}
	}
	return nil
}

// prepareDaily builds one resolver per daily folder from the dates of its
// first and last files in listing order.
func (w *walker) prepareDaily(files []models.MarkdownFile) error {
	var firsts, lasts = map[string]models.MarkdownFile{}, map[string]models.MarkdownFile{}
	var dirs []string
	for _, f := range files {
		if !w.isDaily(f) {
			continue
		}
		if _, ok := firsts[f.Dir]; !ok {
			firsts[f.Dir] = f
			dirs = append(dirs, f.Dir)
		}
		lasts[f.Dir] = f
	}

	for _, dir := range dirs {
		first, err := notes.ParseDate(firsts[dir].Stem)
		if err != nil {
			return fmt.Errorf("walker: %s: %w", firsts[dir].Path, err)
		}
		last, err := notes.ParseDate(lasts[dir].Stem)
		if err != nil {
			return fmt.Errorf("walker: %s: %w", lasts[dir].Path, err)
		}
		w.resolvers[dir] = notes.NewResolver(w.store, dir, first, last)
		w.opts.Logger.Debug("walker: daily folder",
			slog.String("dir", dir),
			slog.String("first", first.Format(notes.DailyLayout)),
			slog.String("last", last.Format(notes.DailyLayout)))
	}
	return nil
}

func (w *walker) isDaily(f models.MarkdownFile) bool {
	return f.Parent == w.opts.DailyFolder
}

func (w *walker) visit(f models.MarkdownFile) error {
	container, err := w.container(f)
	if err != nil {
		return fmt.Errorf("walker: %s: %w", f.Path, err)
	}
	filename := path.Join(w.opts.FilenamePrefix, f.Path)

	if w.isDaily(f) {
		d, err := notes.NewDailyNote(w.graph, w.coiner, container, f, filename, w.resolvers[f.Dir])
		if err != nil {
			return err
		}
		w.stats.DailyNotes++
		w.opts.Logger.Debug("walker: daily note",
			slog.String("path", f.Path),
			slog.Bool("previous", d.HasPrevious()),
			slog.Bool("next", d.HasNext()))
		return nil
	}

	if _, err := notes.NewNote(w.graph, w.coiner, container, f, filename); err != nil {
		return err
	}
	w.stats.Notes++
	w.opts.Logger.Debug("walker: note", slog.String("path", f.Path))
	return nil
}

// container returns the divider or topic for f's parent folder, creating
// it on first use. Folders are keyed by coined identifier, so two folders
// with the same name share one container.
func (w *walker) container(f models.MarkdownFile) (notes.Container, error) {
	kind := notes.KindDivider
	if w.opts.Layout == LayoutTopic {
		kind = notes.KindTopic
	}
	iri, err := notes.ContainerIRI(w.coiner, kind, f.Parent)
	if err != nil {
		return notes.Container{}, err
	}
	if c, ok := w.containers[iri]; ok {
		return c, nil
	}

	var c notes.Container
	if kind == notes.KindTopic {
		c, err = notes.NewTopic(w.graph, w.coiner, f.Parent, f.Dir)
	} else {
		c, err = notes.NewDivider(w.graph, w.coiner, w.binder, f.Parent)
	}
	if err != nil {
		return notes.Container{}, err
	}
	w.containers[iri] = c
	w.stats.Containers++
	return c, nil
}
