// Package storage exposes the markdown tree the converter reads from.
package storage

import "github.com/starford/notegraph/internal/models"

// Provider is the read-only view of a markdown root.
type Provider interface {
	// Root returns the absolute root directory.
	Root() string
	// List returns every .md file under the root, sorted by Path.
	List() ([]models.MarkdownFile, error)
	// Exists reports whether path (relative to root) is a regular file.
	Exists(path string) (bool, error)
}
