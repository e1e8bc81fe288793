package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRead_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("NOTEGRAPH_TEST_NAME", "owner/notes")
	p := writeFile(t, "name: ${NOTEGRAPH_TEST_NAME}\n")

	s := sample{Level: 3}
	if err := Read(p, &s); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Name != "owner/notes" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Level != 3 {
		t.Errorf("level = %d, want default 3", s.Level)
	}
}

func TestRead_InvalidYAML(t *testing.T) {
	p := writeFile(t, "name: [unterminated\n")
	var s sample
	if err := Read(p, &s); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRead_MissingFile(t *testing.T) {
	var s sample
	if err := Read(filepath.Join(t.TempDir(), "nope.yaml"), &s); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}
