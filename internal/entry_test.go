package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/notegraph/internal/api"
	"github.com/starford/notegraph/internal/apperr"
	"github.com/starford/notegraph/internal/graph"
	"github.com/starford/notegraph/internal/testutil"
)

var quiet = slog.New(slog.NewJSONHandler(io.Discard, nil))

func treeConfig(t *testing.T, files ...string) *Config {
	t.Helper()
	root, _ := testutil.TestVault(t, "kb", files...)
	cfg := validConfig()
	cfg.Notes.Root = root
	return cfg
}

func runToBuffer(t *testing.T, cfg *Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), WithConfig(cfg), WithStdout(&out), WithLogger(quiet))
	return out.String(), err
}

func TestRun_WritesTurtleToStdout(t *testing.T) {
	cfg := treeConfig(t, "daily-status/2021_01_01.md", "daily-status/2021_01_04.md", "projects/a.md")

	out, err := runToBuffer(t, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	back, err := graph.Parse(strings.NewReader(out), graph.Turtle)
	if err != nil {
		t.Fatalf("output is not Turtle: %v\n%s", err, out)
	}
	// binder 2, dividers 2x3, dailies 2x5, note 4
	if back.Len() != 22 {
		t.Errorf("triples = %d, want 22\n%s", back.Len(), out)
	}
	if !strings.Contains(out, "https://example.org/kb#Daily20210104") {
		t.Errorf("daily note missing from output:\n%s", out)
	}
}

func TestRun_LogsToStderr(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := treeConfig(t, "projects/draft (v2).md")
	var out, logs bytes.Buffer
	if err := Run(context.Background(), WithConfig(cfg), WithStdout(&out), WithStderr(&logs)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(logs.String(), "Graph built") {
		t.Errorf("build not logged to stderr:\n%s", logs.String())
	}
	if strings.Contains(out.String(), `"level"`) {
		t.Errorf("log line leaked into graph output:\n%s", out.String())
	}
	if _, err := graph.Parse(&out, graph.Turtle); err != nil {
		t.Errorf("output is not Turtle: %v", err)
	}
}

func TestRun_ByteIdenticalAcrossRuns(t *testing.T) {
	cfg := treeConfig(t, "daily-status/2021_01_01.md", "daily-status/2021_01_02.md", "a/x.md", "b/y.md")
	cfg.Notes.Format = "nt"

	first, err := runToBuffer(t, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := runToBuffer(t, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first != second {
		t.Errorf("outputs differ:\n%s\n---\n%s", first, second)
	}
}

func TestRun_NoOutputOnError(t *testing.T) {
	cfg := treeConfig(t, "a/x.md", "daily-status/2021_01_01.md", "daily-status/standup.md")

	out, err := runToBuffer(t, cfg)
	if !errors.Is(err, apperr.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if out != "" {
		t.Errorf("partial output written:\n%s", out)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	cfg := validConfig()
	cfg.Notes.Root = filepath.Join(t.TempDir(), "missing")
	if _, err := runToBuffer(t, cfg); !errors.Is(err, apperr.ErrFilesystem) {
		t.Errorf("err = %v, want ErrFilesystem", err)
	}
}

func TestRun_MissingRepository(t *testing.T) {
	cfg := treeConfig(t, "a/x.md")
	cfg.Notes.Repository = ""
	if _, err := runToBuffer(t, cfg); !errors.Is(err, apperr.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestRun_OutputFile(t *testing.T) {
	cfg := treeConfig(t, "a/x.md")
	cfg.Output.Path = filepath.Join(t.TempDir(), "out", "notes.ttl")

	out, err := runToBuffer(t, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "" {
		t.Errorf("stdout used although an output file is set")
	}
	data, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("https://example.org/kb#NoteX")) {
		t.Errorf("output file missing note:\n%s", data)
	}
}

func TestWatch_RequiresOutputFile(t *testing.T) {
	cfg := treeConfig(t, "a/x.md")
	err := Watch(context.Background(), WithConfig(cfg), WithLogger(quiet))
	if !errors.Is(err, apperr.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestHandler_ServesGraph(t *testing.T) {
	cfg := treeConfig(t, "a/x.md")
	app, err := newApplication(WithConfig(cfg), WithLogger(quiet))
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	holder := api.NewHolder()
	h := app.handler(holder)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before build = %d, want 503", rec.Code)
	}

	if err := app.rebuild(holder); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	first := holder.Current()

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("graph status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/turtle") {
		t.Errorf("content type = %q", got)
	}

	// An unchanged tree keeps the same snapshot.
	if err := app.rebuild(holder); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if holder.Current() != first {
		t.Error("unchanged rebuild replaced the snapshot")
	}

	testutil.WriteNote(t, cfg.Notes.Root, "a/y.md")
	if err := app.rebuild(holder); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if holder.Current().ETag == first.ETag {
		t.Error("new note did not change the ETag")
	}
}
