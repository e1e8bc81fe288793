// Package models defines the values passed between the file source and the
// graph builders.
package models

// MarkdownFile describes one markdown file found under the root. Only its
// location is known; contents are never read.
type MarkdownFile struct {
	// Path is slash-separated and relative to the root.
	Path string
	// Dir is the slash-separated directory of Path, "." for top-level files.
	Dir string
	// Parent is the name of the immediate parent folder. For top-level
	// files it is the root folder's own name.
	Parent string
	// Stem is the file name without its ".md" extension.
	Stem string
}
