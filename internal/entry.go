// Package internal provides the application runtime: one-shot conversion,
// watch mode and the HTTP server.
package internal

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/checksum"
	"github.com/starford/notegraph/internal/graph"
	"github.com/starford/notegraph/internal/storage"
	"github.com/starford/notegraph/internal/walker"
)

// Run converts the markdown tree once and writes the graph to the
// configured output. Nothing is written unless the whole tree converts.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}

	res, err := app.convert()
	if err != nil {
		return err
	}
	return app.write(res)
}

func newApplication(opts ...Option) (*application, error) {
	app := &application{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required: %w", apperr.ErrConfig)
	}
	if err := app.config.Validate(); err != nil {
		return nil, err
	}

	if app.logger == nil {
		// stdout carries the graph, so logs go to stderr.
		app.logger = slog.New(slog.NewJSONHandler(app.stderr, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
		slog.SetDefault(app.logger)
	}

	cfg := app.config
	app.logger.Debug("Configuration loaded",
		slog.String("root", cfg.Notes.Root),
		slog.String("base_uri", cfg.Notes.Base()),
		slog.String("format", cfg.Notes.Format),
		slog.String("layout", cfg.Notes.Layout),
		slog.String("daily_folder", cfg.Notes.DailyFolder),
		slog.String("output", cfg.Output.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, nil
}

// conversion is one serialized graph.
type conversion struct {
	body    []byte
	format  graph.Format
	stats   walker.Stats
	builtAt time.Time
}

func (c *conversion) etag() string {
	return checksum.ETag(c.body)
}

// convert walks the tree from scratch and serializes the result.
func (a *application) convert() (*conversion, error) {
	cfg := a.config.Notes

	format, err := graph.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewFS(cfg.Root)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g, stats, err := walker.Walk(store, walker.Options{
		BaseURI:        cfg.Base(),
		Layout:         cfg.Layout,
		BinderName:     cfg.BinderName(),
		DailyFolder:    cfg.DailyFolder,
		FilenamePrefix: filepath.ToSlash(filepath.Clean(cfg.Root)),
		Logger:         a.logger,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.Serialize(&buf, format); err != nil {
		return nil, err
	}

	a.logger.Info("Graph built",
		slog.Int("files", stats.Files),
		slog.Int("containers", stats.Containers),
		slog.Int("notes", stats.Notes),
		slog.Int("daily_notes", stats.DailyNotes),
		slog.Int("triples", stats.Triples),
		slog.String("format", format.Name),
		slog.Duration("took", time.Since(start)))

	return &conversion{body: buf.Bytes(), format: format, stats: stats, builtAt: time.Now()}, nil
}

// write sends the graph to stdout, or replaces the output file atomically.
func (a *application) write(res *conversion) error {
	out := a.config.Output.Path
	if out == "" {
		if _, err := a.stdout.Write(res.body); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %v: %w", err, apperr.ErrFilesystem)
	}
	if err := atomic.WriteFile(out, bytes.NewReader(res.body)); err != nil {
		return fmt.Errorf("write %s: %v: %w", out, err, apperr.ErrFilesystem)
	}
	a.logger.Info("Graph written", slog.String("path", out), slog.String("etag", res.etag()))
	return nil
}
