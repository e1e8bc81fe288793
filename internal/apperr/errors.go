// Package apperr defines the error kinds a conversion can fail with.
package apperr

import "errors"

var (
	// ErrFilesystem covers a missing or unreadable root and daily notes
	// that disappear between listing and neighbor lookup.
	ErrFilesystem = errors.New("filesystem error")
	// ErrParse covers names that do not fit the folder convention, such as
	// a daily note not named YYYY_MM_DD.
	ErrParse = errors.New("parse error")
	// ErrConfig covers missing or invalid settings.
	ErrConfig = errors.New("configuration error")
)
